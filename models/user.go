package models

import (
	"github.com/edumesh/Backend_ELearning/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Users collection is owned by the auth service; this side only reads users
// and patches enrolled_courses on purchase completion
const USERS_COLLECTION = "users"

const (
	ADMIN      = "admin"
	INSTRUCTOR = "instructor"
	STUDENT    = "student"
)

const SUBSCRIPTION_PREMIUM = "premium"

var userModel *UserModel

type SimpleUser struct {
	ID    string `json:"_id,omitempty" bson:"_id,omitempty" example:"63785424db1efbc237faecca"`
	Name  string `json:"name,omitempty" bson:"name" extensions:"x-omitempty"`
	Email string `json:"email,omitempty" bson:"email" extensions:"x-omitempty"`
}

type User struct {
	ID              primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Name            string               `json:"name" bson:"name"`
	Email           string               `json:"email" bson:"email"`
	UserType        string               `json:"user_type" bson:"user_type"`
	Subscription    string               `json:"subscription,omitempty" bson:"subscription,omitempty"`
	EnrolledCourses []primitive.ObjectID `json:"enrolled_courses" bson:"enrolled_courses,omitempty"`
}

type UserModel struct {
	CollectionName string
}

func (user *UserModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(user.CollectionName)
}

func (user *UserModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := user.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (user *UserModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := user.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (user *UserModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := user.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (user *UserModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := user.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (user *UserModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := user.Use().InsertOne(db.Ctx, data)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func NewUserModel() Collection {
	if userModel == nil {
		userModel = &UserModel{
			CollectionName: USERS_COLLECTION,
		}
	}
	return userModel
}
