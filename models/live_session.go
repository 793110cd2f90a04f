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

const LIVE_SESSIONS_COLLECTION = "live_sessions"

var liveSessionModel *LiveSessionModel

// LiveSession is always a referenced document; sections hold its id in
// live_lessons
type LiveSession struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Course     primitive.ObjectID `json:"course" bson:"course"`
	Title      string             `json:"title" bson:"title"`
	Host       primitive.ObjectID `json:"host" bson:"host"`
	StartTime  primitive.DateTime `json:"start_time" bson:"start_time"`
	Duration   int                `json:"duration" bson:"duration"` // Minutes
	MeetingUrl string             `json:"meeting_url,omitempty" bson:"meeting_url,omitempty"`
	DateUpload primitive.DateTime `json:"date_upload" bson:"date_upload" swaggertype:"string"`
}

type LiveSessionModel struct {
	CollectionName string
}

func NewModelLiveSession(
	liveLesson *forms.LiveLessonForm,
	idCourse,
	idHost primitive.ObjectID,
) (*LiveSession, error) {
	startTime, err := time.Parse(time.RFC3339, liveLesson.StartTime)
	if err != nil {
		return nil, err
	}
	return &LiveSession{
		Course:     idCourse,
		Title:      liveLesson.Title,
		Host:       idHost,
		StartTime:  primitive.NewDateTimeFromTime(startTime),
		Duration:   liveLesson.Duration,
		MeetingUrl: liveLesson.MeetingUrl,
		DateUpload: primitive.NewDateTimeFromTime(time.Now()),
	}, nil
}

func (liveSession *LiveSessionModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(liveSession.CollectionName)
}

func (liveSession *LiveSessionModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := liveSession.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (liveSession *LiveSessionModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := liveSession.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (liveSession *LiveSessionModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := liveSession.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (liveSession *LiveSessionModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := liveSession.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (liveSession *LiveSessionModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := liveSession.Use().InsertOne(db.Ctx, data)
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
		if collection == LIVE_SESSIONS_COLLECTION {
			return
		}
	}
	var jsonSchema = bson.M{
		"bsonType": "object",
		"required": []string{
			"course",
			"title",
			"host",
			"start_time",
			"duration",
			"date_upload",
		},
		"properties": bson.M{
			"course":      bson.M{"bsonType": "objectId"},
			"title":       bson.M{"bsonType": "string", "maxLength": 100},
			"host":        bson.M{"bsonType": "objectId"},
			"start_time":  bson.M{"bsonType": "date"},
			"duration":    bson.M{"bsonType": "int", "minimum": 1},
			"meeting_url": bson.M{"bsonType": "string"},
			"date_upload": bson.M{"bsonType": "date"},
		},
	}
	var validators = bson.M{
		"$jsonSchema": jsonSchema,
	}
	opts := &options.CreateCollectionOptions{
		Validator: validators,
	}
	err = DbConnect.CreateCollection(LIVE_SESSIONS_COLLECTION, opts)
	if err != nil {
		panic(err)
	}
}

func NewLiveSessionModel() Collection {
	if liveSessionModel == nil {
		liveSessionModel = &LiveSessionModel{
			CollectionName: LIVE_SESSIONS_COLLECTION,
		}
	}
	return liveSessionModel
}
