package models

import (
	"time"

	"github.com/edumesh/Backend_ELearning/db"
	"github.com/edumesh/Backend_ELearning/forms"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SECTIONS_COLLECTION = "course_sections"

var sectionModel *SectionModel

// CourseSection orders content inside a course. The content arrays hold
// references; the same ids are mirrored on the parent Course document
type CourseSection struct {
	ID          primitive.ObjectID   `json:"_id" bson:"_id,omitempty" example:"637d5de216f58bc8ec7f7f51"`
	Course      primitive.ObjectID   `json:"course" bson:"course"`
	Title       string               `json:"title" bson:"title" example:"Getting started"`
	Summary     string               `json:"summary,omitempty" bson:"summary,omitempty"`
	Order       int                  `json:"order" bson:"order"`
	Lessons     []primitive.ObjectID `json:"lessons" bson:"lessons,omitempty"`
	Quizzes     []primitive.ObjectID `json:"quizzes" bson:"quizzes,omitempty"`
	Assignments []primitive.ObjectID `json:"assignments" bson:"assignments,omitempty"`
	LiveLessons []primitive.ObjectID `json:"live_lessons" bson:"live_lessons,omitempty"`
	IsPublished bool                 `json:"is_published" bson:"is_published"`
	CreatedBy   primitive.ObjectID   `json:"created_by" bson:"created_by"`
	DateUpload  primitive.DateTime   `json:"date_upload" bson:"date_upload" swaggertype:"string"`
	DateUpdate  primitive.DateTime   `json:"date_update" bson:"date_update" swaggertype:"string"`
}

type SectionModel struct {
	CollectionName string
}

func NewModelSection(
	section *forms.SectionForm,
	order int,
	idCourse,
	idUser primitive.ObjectID,
) *CourseSection {
	now := primitive.NewDateTimeFromTime(time.Now())
	return &CourseSection{
		Course:     idCourse,
		Title:      section.Title,
		Summary:    section.Summary,
		Order:      order,
		CreatedBy:  idUser,
		DateUpload: now,
		DateUpdate: now,
	}
}

func (section *SectionModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(section.CollectionName)
}

func (section *SectionModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := section.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (section *SectionModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := section.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (section *SectionModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := section.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (section *SectionModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := section.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (section *SectionModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := section.Use().InsertOne(db.Ctx, data)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func init() {
	collections, err := DbConnect.GetCollections()
	if err != nil {
		panic(err)
	}
	for _, collection := range collections {
		if collection == SECTIONS_COLLECTION {
			return
		}
	}
	var jsonSchema = bson.M{
		"bsonType": "object",
		"required": []string{
			"course",
			"title",
			"order",
			"is_published",
			"created_by",
			"date_upload",
			"date_update",
		},
		"properties": bson.M{
			"course":  bson.M{"bsonType": "objectId"},
			"title":   bson.M{"bsonType": "string", "maxLength": 100},
			"summary": bson.M{"bsonType": "string", "maxLength": 500},
			"order":   bson.M{"bsonType": "int", "minimum": 1},
			"lessons": bson.M{
				"bsonType": bson.A{"array"},
				"items":    bson.M{"bsonType": "objectId"},
			},
			"quizzes": bson.M{
				"bsonType": bson.A{"array"},
				"items":    bson.M{"bsonType": "objectId"},
			},
			"assignments": bson.M{
				"bsonType": bson.A{"array"},
				"items":    bson.M{"bsonType": "objectId"},
			},
			"live_lessons": bson.M{
				"bsonType": bson.A{"array"},
				"items":    bson.M{"bsonType": "objectId"},
			},
			"is_published": bson.M{"bsonType": "bool"},
			"created_by":   bson.M{"bsonType": "objectId"},
			"date_upload":  bson.M{"bsonType": "date"},
			"date_update":  bson.M{"bsonType": "date"},
		},
	}
	var validators = bson.M{
		"$jsonSchema": jsonSchema,
	}
	opts := &options.CreateCollectionOptions{
		Validator: validators,
	}
	err = DbConnect.CreateCollection(SECTIONS_COLLECTION, opts)
	if err != nil {
		panic(err)
	}
}

func NewSectionModel() Collection {
	if sectionModel == nil {
		sectionModel = &SectionModel{
			CollectionName: SECTIONS_COLLECTION,
		}
	}
	return sectionModel
}
