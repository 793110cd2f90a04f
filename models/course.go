package models

import (
	"time"

	"github.com/edumesh/Backend_ELearning/db"
	"github.com/edumesh/Backend_ELearning/forms"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const COURSES_COLLECTION = "courses"
const COURSES_INDEX = "courses"

// Course status
const (
	COURSE_DRAFT        = "draft"
	COURSE_IN_PROGRESS  = "inProgress"
	COURSE_PUBLISHED    = "published"
	COURSE_ARCHIVED     = "archived"
	COURSE_UNDER_REVIEW = "underReview"
)

var courseModel *CourseModel

type CourseRating struct {
	Average float64 `json:"average" bson:"average"`
	Count   int     `json:"count" bson:"count"`
}

type CourseBatch struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	DateStart primitive.DateTime `json:"date_start" bson:"date_start"`
}

type LiveConfig struct {
	Enabled    bool   `json:"enabled" bson:"enabled"`
	MeetingUrl string `json:"meeting_url,omitempty" bson:"meeting_url,omitempty"`
}

// Mongodb
// Lessons/Quizzes/Assignments mirror the child documents' course
// back-reference. The two sides are written separately, not in a
// transaction (see section service)
type Course struct {
	ID               primitive.ObjectID   `json:"_id" bson:"_id,omitempty" example:"637d5de216f58bc8ec7f7f51"`
	Title            string               `json:"title" bson:"title" example:"Japanese N5"`
	Language         primitive.ObjectID   `json:"language" bson:"language"`
	Level            string               `json:"level,omitempty" bson:"level,omitempty" example:"beginner"`
	Description      string               `json:"description,omitempty" bson:"description,omitempty"`
	Duration         int                  `json:"duration,omitempty" bson:"duration,omitempty"` // Hours
	Instructor       primitive.ObjectID   `json:"instructor" bson:"instructor"`
	Lessons          []primitive.ObjectID `json:"lessons" bson:"lessons,omitempty"`
	Quizzes          []primitive.ObjectID `json:"quizzes" bson:"quizzes,omitempty"`
	Assignments      []primitive.ObjectID `json:"assignments" bson:"assignments,omitempty"`
	EnrolledStudents []primitive.ObjectID `json:"enrolled_students" bson:"enrolled_students,omitempty"`
	Rating           CourseRating         `json:"rating" bson:"rating"`
	Price            float64              `json:"price" bson:"price"`
	DiscountPrice    float64              `json:"discount_price,omitempty" bson:"discount_price,omitempty"`
	Status           string               `json:"status" bson:"status" enums:"draft,inProgress,published,archived,underReview"`
	Live             LiveConfig           `json:"live" bson:"live"`
	Batches          []CourseBatch        `json:"batches,omitempty" bson:"batches,omitempty"`
	DateUpload       primitive.DateTime   `json:"date_upload" bson:"date_upload" swaggertype:"string"`
	DateUpdate       primitive.DateTime   `json:"date_update" bson:"date_update" swaggertype:"string"`
}

// ElasticSearch Struct - Course indexer
type CourseES struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Level       string    `json:"level,omitempty"`
	Language    string    `json:"language"`
	Instructor  string    `json:"instructor"`
	Price       float64   `json:"price"`
	Published   time.Time `json:"published"`
}

type CourseModel struct {
	CollectionName string
}

func NewModelCourse(course *forms.CourseForm, idInstructor primitive.ObjectID) (*Course, error) {
	idObjLanguage, err := primitive.ObjectIDFromHex(course.Language)
	if err != nil {
		return nil, err
	}
	now := primitive.NewDateTimeFromTime(time.Now())

	modelCourse := &Course{
		Title:         course.Title,
		Language:      idObjLanguage,
		Level:         course.Level,
		Description:   course.Description,
		Duration:      course.Duration,
		Instructor:    idInstructor,
		Price:         course.Price,
		DiscountPrice: course.DiscountPrice,
		Status:        COURSE_DRAFT,
		Live: LiveConfig{
			Enabled:    course.LiveEnabled,
			MeetingUrl: course.MeetingUrl,
		},
		DateUpload: now,
		DateUpdate: now,
	}
	for _, batch := range course.Batches {
		dateStart, err := time.Parse("2006-01-02", batch.DateStart)
		if err != nil {
			return nil, err
		}
		modelCourse.Batches = append(modelCourse.Batches, CourseBatch{
			ID:        primitive.NewObjectID(),
			Name:      batch.Name,
			DateStart: primitive.NewDateTimeFromTime(dateStart),
		})
	}
	return modelCourse, nil
}

func (course *CourseModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(course.CollectionName)
}

func (course *CourseModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := course.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (course *CourseModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := course.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (course *CourseModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := course.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (course *CourseModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := course.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (course *CourseModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := course.Use().InsertOne(db.Ctx, data)
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
		if collection == COURSES_COLLECTION {
			return
		}
	}
	var jsonSchema = bson.M{
		"bsonType": "object",
		"required": []string{
			"title",
			"language",
			"instructor",
			"price",
			"status",
			"date_upload",
			"date_update",
		},
		"properties": bson.M{
			"title":       bson.M{"bsonType": "string", "maxLength": 100},
			"language":    bson.M{"bsonType": "objectId"},
			"level":       bson.M{"bsonType": "string"},
			"description": bson.M{"bsonType": "string", "maxLength": 1500},
			"duration":    bson.M{"bsonType": "int", "minimum": 0},
			"instructor":  bson.M{"bsonType": "objectId"},
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
			"enrolled_students": bson.M{
				"bsonType": bson.A{"array"},
				"items":    bson.M{"bsonType": "objectId"},
			},
			"rating": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"average": bson.M{"bsonType": "double"},
					"count":   bson.M{"bsonType": "int"},
				},
			},
			"price":          bson.M{"bsonType": "double", "minimum": 0},
			"discount_price": bson.M{"bsonType": "double", "minimum": 0},
			"status": bson.M{"enum": bson.A{
				COURSE_DRAFT,
				COURSE_IN_PROGRESS,
				COURSE_PUBLISHED,
				COURSE_ARCHIVED,
				COURSE_UNDER_REVIEW,
			}},
			"live": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"enabled":     bson.M{"bsonType": "bool"},
					"meeting_url": bson.M{"bsonType": "string"},
				},
			},
			"batches": bson.M{
				"bsonType": bson.A{"array"},
				"items": bson.M{
					"bsonType": "object",
					"required": bson.A{"name", "date_start"},
					"properties": bson.M{
						"name":       bson.M{"bsonType": "string", "maxLength": 100},
						"date_start": bson.M{"bsonType": "date"},
					},
				},
			},
			"date_upload": bson.M{"bsonType": "date"},
			"date_update": bson.M{"bsonType": "date"},
		},
	}
	var validators = bson.M{
		"$jsonSchema": jsonSchema,
	}
	opts := &options.CreateCollectionOptions{
		Validator: validators,
	}
	err = DbConnect.CreateCollection(COURSES_COLLECTION, opts)
	if err != nil {
		panic(err)
	}
}

// ElastichSearch Bulk
func NewBulkCourse() (esutil.BulkIndexer, error) {
	es, err := db.NewConnectionEs()
	if err != nil {
		return nil, err
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         COURSES_INDEX,
		Client:        es,
		NumWorkers:    db.NUM_WORKERS,
		FlushBytes:    int(db.FLUSH_BYTES),
		FlushInterval: db.FLUSH_INTERVAL,
	})
	if err != nil {
		return nil, err
	}
	return bi, nil
}

func NewCourseModel() Collection {
	if courseModel == nil {
		courseModel = &CourseModel{
			CollectionName: COURSES_COLLECTION,
		}
	}
	return courseModel
}
