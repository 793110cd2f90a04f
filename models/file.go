package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UploadedFile is embedded wherever media is attached; the object itself
// lives in S3 under Key
type UploadedFile struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Filename string             `json:"filename" bson:"filename"`
	Key      string             `json:"key" bson:"key"`
	Location string             `json:"location" bson:"location"`
	Mimetype string             `json:"mimetype" bson:"mimetype,omitempty"`
	Date     primitive.DateTime `json:"date" bson:"date"`
}

func fileSchema() bson.M {
	return bson.M{
		"bsonType": "object",
		"required": bson.A{"filename", "key", "location"},
		"properties": bson.M{
			"filename": bson.M{"bsonType": "string"},
			"key":      bson.M{"bsonType": "string"},
			"location": bson.M{"bsonType": "string"},
			"mimetype": bson.M{"bsonType": "string"},
			"date":     bson.M{"bsonType": "date"},
		},
	}
}
