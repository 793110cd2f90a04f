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

const QUIZZES_COLLECTION = "quizzes"

var quizModel *QuizModel

type QuizQuestion struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Question string             `json:"question" bson:"question"`
	Options  []string           `json:"options" bson:"options"`
	Correct  int                `json:"correct" bson:"correct"`
	Points   int                `json:"points" bson:"points"`
}

type Quiz struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty" example:"637d5de216f58bc8ec7f7f51"`
	Course      primitive.ObjectID `json:"course" bson:"course"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Questions   []QuizQuestion     `json:"questions" bson:"questions"`
	TimeLimit   int                `json:"time_limit,omitempty" bson:"time_limit,omitempty"` // Minutes
	IsPublished bool               `json:"is_published" bson:"is_published"`
	DateUpload  primitive.DateTime `json:"date_upload" bson:"date_upload" swaggertype:"string"`
	DateUpdate  primitive.DateTime `json:"date_update" bson:"date_update" swaggertype:"string"`
}

type QuizModel struct {
	CollectionName string
}

func NewModelQuiz(quiz *forms.QuizForm, idCourse primitive.ObjectID) *Quiz {
	now := primitive.NewDateTimeFromTime(time.Now())

	var questions []QuizQuestion
	for _, question := range quiz.Questions {
		questions = append(questions, QuizQuestion{
			ID:       primitive.NewObjectID(),
			Question: question.Question,
			Options:  question.Options,
			Correct:  *question.Correct,
			Points:   question.Points,
		})
	}
	return &Quiz{
		Course:      idCourse,
		Title:       quiz.Title,
		Description: quiz.Description,
		Questions:   questions,
		TimeLimit:   quiz.TimeLimit,
		DateUpload:  now,
		DateUpdate:  now,
	}
}

func (quiz *QuizModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(quiz.CollectionName)
}

func (quiz *QuizModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := quiz.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (quiz *QuizModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := quiz.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (quiz *QuizModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := quiz.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (quiz *QuizModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := quiz.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (quiz *QuizModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := quiz.Use().InsertOne(db.Ctx, data)
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
		if collection == QUIZZES_COLLECTION {
			return
		}
	}
	var jsonSchema = bson.M{
		"bsonType": "object",
		"required": []string{
			"course",
			"title",
			"questions",
			"is_published",
			"date_upload",
			"date_update",
		},
		"properties": bson.M{
			"course":      bson.M{"bsonType": "objectId"},
			"title":       bson.M{"bsonType": "string", "maxLength": 100},
			"description": bson.M{"bsonType": "string", "maxLength": 500},
			"questions": bson.M{
				"bsonType": bson.A{"array"},
				"items": bson.M{
					"bsonType": "object",
					"required": bson.A{"question", "options", "correct"},
					"properties": bson.M{
						"question": bson.M{"bsonType": "string"},
						"options": bson.M{
							"bsonType": bson.A{"array"},
							"items":    bson.M{"bsonType": "string"},
						},
						"correct": bson.M{"bsonType": "int", "minimum": 0},
						"points":  bson.M{"bsonType": "int", "minimum": 0},
					},
				},
			},
			"time_limit":   bson.M{"bsonType": "int", "minimum": 1},
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
	err = DbConnect.CreateCollection(QUIZZES_COLLECTION, opts)
	if err != nil {
		panic(err)
	}
}

func NewQuizModel() Collection {
	if quizModel == nil {
		quizModel = &QuizModel{
			CollectionName: QUIZZES_COLLECTION,
		}
	}
	return quizModel
}
