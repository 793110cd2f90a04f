package models

import (
	"time"

	"github.com/edumesh/Backend_ELearning/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const COURSE_PURCHASES_COLLECTION = "course_purchases"

// Purchase status
const (
	PURCHASE_PENDING   = "pending"
	PURCHASE_COMPLETED = "completed"
)

var coursePurchaseModel *CoursePurchaseModel

type CoursePurchase struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty" example:"637d5de216f58bc8ec7f7f51"`
	User       primitive.ObjectID `json:"user" bson:"user"`
	Course     primitive.ObjectID `json:"course" bson:"course"`
	OrderID    string             `json:"order_id" bson:"order_id"`
	PaymentID  string             `json:"payment_id,omitempty" bson:"payment_id,omitempty"`
	Amount     float64            `json:"amount" bson:"amount"` // Currency subunits
	Currency   string             `json:"currency" bson:"currency"`
	Status     string             `json:"status" bson:"status" enums:"pending,completed"`
	DateUpload primitive.DateTime `json:"date_upload" bson:"date_upload" swaggertype:"string"`
	DateUpdate primitive.DateTime `json:"date_update" bson:"date_update" swaggertype:"string"`
}

type CoursePurchaseModel struct {
	CollectionName string
}

func NewModelCoursePurchase(
	idUser,
	idCourse primitive.ObjectID,
	orderId,
	currency string,
	amount float64,
) *CoursePurchase {
	now := primitive.NewDateTimeFromTime(time.Now())
	return &CoursePurchase{
		User:       idUser,
		Course:     idCourse,
		OrderID:    orderId,
		Amount:     amount,
		Currency:   currency,
		Status:     PURCHASE_PENDING,
		DateUpload: now,
		DateUpdate: now,
	}
}

func (purchase *CoursePurchaseModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(purchase.CollectionName)
}

func (purchase *CoursePurchaseModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := purchase.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (purchase *CoursePurchaseModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := purchase.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (purchase *CoursePurchaseModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := purchase.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (purchase *CoursePurchaseModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := purchase.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (purchase *CoursePurchaseModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := purchase.Use().InsertOne(db.Ctx, data)
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
		if collection == COURSE_PURCHASES_COLLECTION {
			return
		}
	}
	var jsonSchema = bson.M{
		"bsonType": "object",
		"required": []string{
			"user",
			"course",
			"order_id",
			"amount",
			"currency",
			"status",
			"date_upload",
			"date_update",
		},
		"properties": bson.M{
			"user":       bson.M{"bsonType": "objectId"},
			"course":     bson.M{"bsonType": "objectId"},
			"order_id":   bson.M{"bsonType": "string"},
			"payment_id": bson.M{"bsonType": "string"},
			"amount":     bson.M{"bsonType": "double", "minimum": 0},
			"currency":   bson.M{"bsonType": "string", "maxLength": 3},
			"status": bson.M{"enum": bson.A{
				PURCHASE_PENDING,
				PURCHASE_COMPLETED,
			}},
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
	err = DbConnect.CreateCollection(COURSE_PURCHASES_COLLECTION, opts)
	if err != nil {
		panic(err)
	}
}

func NewCoursePurchaseModel() Collection {
	if coursePurchaseModel == nil {
		coursePurchaseModel = &CoursePurchaseModel{
			CollectionName: COURSE_PURCHASES_COLLECTION,
		}
	}
	return coursePurchaseModel
}
