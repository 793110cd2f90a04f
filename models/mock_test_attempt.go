package models

import (
	"time"

	"github.com/edumesh/Backend_ELearning/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const MOCK_TEST_ATTEMPTS_COLLECTION = "mock_test_attempts"

var mockTestAttemptModel *MockTestAttemptModel

// IsCorrect is nil while the answer waits for manual review
type AttemptAnswer struct {
	Question    primitive.ObjectID `json:"question" bson:"question"`
	Section     primitive.ObjectID `json:"section" bson:"section"`
	UserAnswer  string             `json:"user_answer,omitempty" bson:"user_answer,omitempty"`
	UserAnswers []string           `json:"user_answers,omitempty" bson:"user_answers,omitempty"`
	IsCorrect   *bool              `json:"is_correct" bson:"is_correct,omitempty"`
	Score       float64            `json:"score" bson:"score"`
}

type SectionScore struct {
	Section  primitive.ObjectID `json:"section" bson:"section"`
	Score    float64            `json:"score" bson:"score"`
	MaxScore float64            `json:"max_score" bson:"max_score"`
}

type AttemptCertificate struct {
	Key      string             `json:"key" bson:"key"`
	Serial   string             `json:"serial" bson:"serial"`
	IssuedAt primitive.DateTime `json:"issued_at" bson:"issued_at"`
}

type MockTestAttempt struct {
	ID            primitive.ObjectID  `json:"_id" bson:"_id,omitempty" example:"637d5de216f58bc8ec7f7f51"`
	User          primitive.ObjectID  `json:"user" bson:"user"`
	MockTest      primitive.ObjectID  `json:"mock_test" bson:"mock_test"`
	StartTime     primitive.DateTime  `json:"start_time" bson:"start_time"`
	EndTime       primitive.DateTime  `json:"end_time,omitempty" bson:"end_time,omitempty"`
	Answers       []AttemptAnswer     `json:"answers" bson:"answers,omitempty"`
	SectionScores []SectionScore      `json:"section_scores" bson:"section_scores,omitempty"`
	TotalScore    float64             `json:"total_score" bson:"total_score"`
	Completed     bool                `json:"completed" bson:"completed"`
	Feedback      string              `json:"feedback,omitempty" bson:"feedback,omitempty"`
	Certificate   *AttemptCertificate `json:"certificate,omitempty" bson:"certificate,omitempty"`
}

type MockTestAttemptModel struct {
	CollectionName string
}

func NewModelMockTestAttempt(idUser, idMockTest primitive.ObjectID) *MockTestAttempt {
	return &MockTestAttempt{
		User:      idUser,
		MockTest:  idMockTest,
		StartTime: primitive.NewDateTimeFromTime(time.Now()),
	}
}

func (attempt *MockTestAttemptModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(attempt.CollectionName)
}

func (attempt *MockTestAttemptModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := attempt.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (attempt *MockTestAttemptModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := attempt.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (attempt *MockTestAttemptModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := attempt.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (attempt *MockTestAttemptModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := attempt.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (attempt *MockTestAttemptModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := attempt.Use().InsertOne(db.Ctx, data)
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
		if collection == MOCK_TEST_ATTEMPTS_COLLECTION {
			return
		}
	}
	var jsonSchema = bson.M{
		"bsonType": "object",
		"required": []string{
			"user",
			"mock_test",
			"start_time",
			"total_score",
			"completed",
		},
		"properties": bson.M{
			"user":       bson.M{"bsonType": "objectId"},
			"mock_test":  bson.M{"bsonType": "objectId"},
			"start_time": bson.M{"bsonType": "date"},
			"end_time":   bson.M{"bsonType": "date"},
			"answers": bson.M{
				"bsonType": bson.A{"array"},
				"items": bson.M{
					"bsonType": "object",
					"required": bson.A{"question", "section", "score"},
					"properties": bson.M{
						"question":    bson.M{"bsonType": "objectId"},
						"section":     bson.M{"bsonType": "objectId"},
						"user_answer": bson.M{"bsonType": "string"},
						"user_answers": bson.M{
							"bsonType": bson.A{"array"},
							"items":    bson.M{"bsonType": "string"},
						},
						"is_correct": bson.M{"bsonType": "bool"},
						"score":      bson.M{"bsonType": "double"},
					},
				},
			},
			"section_scores": bson.M{
				"bsonType": bson.A{"array"},
				"items": bson.M{
					"bsonType": "object",
					"required": bson.A{"section", "score", "max_score"},
					"properties": bson.M{
						"section":   bson.M{"bsonType": "objectId"},
						"score":     bson.M{"bsonType": "double"},
						"max_score": bson.M{"bsonType": "double"},
					},
				},
			},
			"total_score": bson.M{"bsonType": "double"},
			"completed":   bson.M{"bsonType": "bool"},
			"feedback":    bson.M{"bsonType": "string", "maxLength": 1000},
			"certificate": bson.M{
				"bsonType": "object",
				"required": bson.A{"key", "serial", "issued_at"},
				"properties": bson.M{
					"key":       bson.M{"bsonType": "string"},
					"serial":    bson.M{"bsonType": "string"},
					"issued_at": bson.M{"bsonType": "date"},
				},
			},
		},
	}
	var validators = bson.M{
		"$jsonSchema": jsonSchema,
	}
	opts := &options.CreateCollectionOptions{
		Validator: validators,
	}
	err = DbConnect.CreateCollection(MOCK_TEST_ATTEMPTS_COLLECTION, opts)
	if err != nil {
		panic(err)
	}
}

func NewMockTestAttemptModel() Collection {
	if mockTestAttemptModel == nil {
		mockTestAttemptModel = &MockTestAttemptModel{
			CollectionName: MOCK_TEST_ATTEMPTS_COLLECTION,
		}
	}
	return mockTestAttemptModel
}
