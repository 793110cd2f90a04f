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

const LECTURES_COLLECTION = "lectures"

var lectureModel *LectureModel

type LectureCompletion struct {
	User        primitive.ObjectID `json:"user" bson:"user"`
	CompletedAt primitive.DateTime `json:"completed_at" bson:"completed_at"`
}

type Lecture struct {
	ID            primitive.ObjectID  `json:"_id" bson:"_id,omitempty" example:"637d5de216f58bc8ec7f7f51"`
	Course        primitive.ObjectID  `json:"course" bson:"course"`
	Title         string              `json:"title" bson:"title"`
	Description   string              `json:"description,omitempty" bson:"description,omitempty"`
	Order         int                 `json:"order" bson:"order"`
	Duration      int                 `json:"duration" bson:"duration"` // Seconds
	FeaturedImage *UploadedFile       `json:"featured_image,omitempty" bson:"featured_image,omitempty"`
	Video         *UploadedFile       `json:"video,omitempty" bson:"video,omitempty"`
	ExerciseFiles []UploadedFile      `json:"exercise_files,omitempty" bson:"exercise_files,omitempty"`
	CompletedBy   []LectureCompletion `json:"completed_by" bson:"completed_by,omitempty"`
	IsPublished   bool                `json:"is_published" bson:"is_published"`
	DateUpload    primitive.DateTime  `json:"date_upload" bson:"date_upload" swaggertype:"string"`
	DateUpdate    primitive.DateTime  `json:"date_update" bson:"date_update" swaggertype:"string"`
}

type LectureModel struct {
	CollectionName string
}

func NewModelLecture(
	lesson *forms.LessonForm,
	order int,
	idCourse primitive.ObjectID,
) *Lecture {
	now := primitive.NewDateTimeFromTime(time.Now())
	return &Lecture{
		Course:      idCourse,
		Title:       lesson.Title,
		Description: lesson.Description,
		Order:       order,
		Duration:    lesson.DurationHours*3600 + lesson.DurationMinutes*60 + lesson.DurationSeconds,
		IsPublished: lesson.IsPublished != nil && *lesson.IsPublished,
		DateUpload:  now,
		DateUpdate:  now,
	}
}

func (lecture *LectureModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(lecture.CollectionName)
}

func (lecture *LectureModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := lecture.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (lecture *LectureModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := lecture.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (lecture *LectureModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := lecture.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (lecture *LectureModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := lecture.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (lecture *LectureModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := lecture.Use().InsertOne(db.Ctx, data)
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
		if collection == LECTURES_COLLECTION {
			return
		}
	}
	var jsonSchema = bson.M{
		"bsonType": "object",
		"required": []string{
			"course",
			"title",
			"order",
			"duration",
			"is_published",
			"date_upload",
			"date_update",
		},
		"properties": bson.M{
			"course":         bson.M{"bsonType": "objectId"},
			"title":          bson.M{"bsonType": "string", "maxLength": 100},
			"description":    bson.M{"bsonType": "string", "maxLength": 1500},
			"order":          bson.M{"bsonType": "int", "minimum": 1},
			"duration":       bson.M{"bsonType": "int", "minimum": 0},
			"featured_image": fileSchema(),
			"video":          fileSchema(),
			"exercise_files": bson.M{
				"bsonType": bson.A{"array"},
				"items":    fileSchema(),
			},
			"completed_by": bson.M{
				"bsonType": bson.A{"array"},
				"items": bson.M{
					"bsonType": "object",
					"required": bson.A{"user", "completed_at"},
					"properties": bson.M{
						"user":         bson.M{"bsonType": "objectId"},
						"completed_at": bson.M{"bsonType": "date"},
					},
				},
			},
			"is_published": bson.M{"bsonType": "bool"},
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
	err = DbConnect.CreateCollection(LECTURES_COLLECTION, opts)
	if err != nil {
		panic(err)
	}
}

func NewLectureModel() Collection {
	if lectureModel == nil {
		lectureModel = &LectureModel{
			CollectionName: LECTURES_COLLECTION,
		}
	}
	return lectureModel
}
