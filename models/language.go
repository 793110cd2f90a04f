package models

import (
	"github.com/edumesh/Backend_ELearning/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Languages collection is seeded by the content service; this side only reads
const LANGUAGES_COLLECTION = "languages"

var languageModel *LanguageModel

type Language struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id" example:"637d5de216f58bc8ec7f7f51"`
	Language string             `json:"language" bson:"language" example:"English"`
	V        int32              `json:"__v" bson:"__v"`
}

type LanguageModel struct {
	CollectionName string
}

func (language *LanguageModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(language.CollectionName)
}

func (language *LanguageModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := language.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (language *LanguageModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := language.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (language *LanguageModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := language.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (language *LanguageModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := language.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (language *LanguageModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := language.Use().InsertOne(db.Ctx, data)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func NewLanguageModel() Collection {
	if languageModel == nil {
		languageModel = &LanguageModel{
			CollectionName: LANGUAGES_COLLECTION,
		}
	}
	return languageModel
}
