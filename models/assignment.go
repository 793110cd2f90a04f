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

const ASSIGNMENTS_COLLECTION = "assignments"

// Submission status
const (
	SUBMISSION_SUBMITTED = "submitted"
	SUBMISSION_GRADED    = "graded"
	SUBMISSION_RETURNED  = "returned"
)

// Time limit units
const (
	TIME_UNIT_MINUTES = "minutes"
	TIME_UNIT_HOURS   = "hours"
	TIME_UNIT_DAYS    = "days"
)

var assignmentModel *AssignmentModel

type TimeLimit struct {
	Value int    `json:"value" bson:"value"`
	Unit  string `json:"unit" bson:"unit"`
}

type AssignmentSubmission struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Student     primitive.ObjectID `json:"student" bson:"student"`
	Files       []UploadedFile     `json:"files" bson:"files"`
	SubmittedAt primitive.DateTime `json:"submitted_at" bson:"submitted_at"`
	Grade       *float64           `json:"grade,omitempty" bson:"grade,omitempty"`
	Feedback    string             `json:"feedback,omitempty" bson:"feedback,omitempty"`
	Status      string             `json:"status" bson:"status" enums:"submitted,graded,returned"`
}

type Assignment struct {
	ID          primitive.ObjectID     `json:"_id" bson:"_id,omitempty" example:"637d5de216f58bc8ec7f7f51"`
	Course      primitive.ObjectID     `json:"course" bson:"course"`
	Lecture     primitive.ObjectID     `json:"lecture,omitempty" bson:"lecture,omitempty"`
	Title       string                 `json:"title" bson:"title"`
	Description string                 `json:"description,omitempty" bson:"description,omitempty"`
	DueDate     primitive.DateTime     `json:"due_date" bson:"due_date"`
	TimeLimit   *TimeLimit             `json:"time_limit,omitempty" bson:"time_limit,omitempty"`
	MaxPoints   int                    `json:"max_points" bson:"max_points"`
	Attachments []UploadedFile         `json:"attachments,omitempty" bson:"attachments,omitempty"`
	Submissions []AssignmentSubmission `json:"submissions" bson:"submissions,omitempty"`
	DateUpload  primitive.DateTime     `json:"date_upload" bson:"date_upload" swaggertype:"string"`
	DateUpdate  primitive.DateTime     `json:"date_update" bson:"date_update" swaggertype:"string"`
}

type AssignmentModel struct {
	CollectionName string
}

func NewModelAssignment(
	assignment *forms.AssignmentForm,
	idCourse primitive.ObjectID,
) (*Assignment, error) {
	dueDate, err := time.Parse(time.RFC3339, assignment.DueDate)
	if err != nil {
		return nil, err
	}
	now := primitive.NewDateTimeFromTime(time.Now())

	modelAssignment := &Assignment{
		Course:      idCourse,
		Title:       assignment.Title,
		Description: assignment.Description,
		DueDate:     primitive.NewDateTimeFromTime(dueDate),
		MaxPoints:   assignment.MaxPoints,
		DateUpload:  now,
		DateUpdate:  now,
	}
	if assignment.Lecture != "" {
		idObjLecture, err := primitive.ObjectIDFromHex(assignment.Lecture)
		if err != nil {
			return nil, err
		}
		modelAssignment.Lecture = idObjLecture
	}
	if assignment.TimeLimitValue > 0 {
		modelAssignment.TimeLimit = &TimeLimit{
			Value: assignment.TimeLimitValue,
			Unit:  assignment.TimeLimitUnit,
		}
	}
	return modelAssignment, nil
}

func (assignment *AssignmentModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(assignment.CollectionName)
}

func (assignment *AssignmentModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := assignment.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (assignment *AssignmentModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := assignment.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (assignment *AssignmentModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := assignment.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (assignment *AssignmentModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := assignment.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (assignment *AssignmentModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := assignment.Use().InsertOne(db.Ctx, data)
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
		if collection == ASSIGNMENTS_COLLECTION {
			return
		}
	}
	var jsonSchema = bson.M{
		"bsonType": "object",
		"required": []string{
			"course",
			"title",
			"due_date",
			"max_points",
			"date_upload",
			"date_update",
		},
		"properties": bson.M{
			"course":      bson.M{"bsonType": "objectId"},
			"lecture":     bson.M{"bsonType": "objectId"},
			"title":       bson.M{"bsonType": "string", "maxLength": 100},
			"description": bson.M{"bsonType": "string", "maxLength": 1500},
			"due_date":    bson.M{"bsonType": "date"},
			"time_limit": bson.M{
				"bsonType": "object",
				"required": bson.A{"value", "unit"},
				"properties": bson.M{
					"value": bson.M{"bsonType": "int", "minimum": 1},
					"unit": bson.M{"enum": bson.A{
						TIME_UNIT_MINUTES,
						TIME_UNIT_HOURS,
						TIME_UNIT_DAYS,
					}},
				},
			},
			"max_points": bson.M{"bsonType": "int", "minimum": 0},
			"attachments": bson.M{
				"bsonType": bson.A{"array"},
				"items":    fileSchema(),
			},
			"submissions": bson.M{
				"bsonType": bson.A{"array"},
				"items": bson.M{
					"bsonType": "object",
					"required": bson.A{"student", "files", "submitted_at", "status"},
					"properties": bson.M{
						"student": bson.M{"bsonType": "objectId"},
						"files": bson.M{
							"bsonType": bson.A{"array"},
							"items":    fileSchema(),
						},
						"submitted_at": bson.M{"bsonType": "date"},
						"grade":        bson.M{"bsonType": "double", "minimum": 0},
						"feedback":     bson.M{"bsonType": "string", "maxLength": 1000},
						"status": bson.M{"enum": bson.A{
							SUBMISSION_SUBMITTED,
							SUBMISSION_GRADED,
							SUBMISSION_RETURNED,
						}},
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
	err = DbConnect.CreateCollection(ASSIGNMENTS_COLLECTION, opts)
	if err != nil {
		panic(err)
	}
}

func NewAssignmentModel() Collection {
	if assignmentModel == nil {
		assignmentModel = &AssignmentModel{
			CollectionName: ASSIGNMENTS_COLLECTION,
		}
	}
	return assignmentModel
}
