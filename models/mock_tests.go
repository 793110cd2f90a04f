package models

import (
	"time"

	"github.com/edumesh/Backend_ELearning/db"
	"github.com/edumesh/Backend_ELearning/forms"
	"github.com/edumesh/Backend_ELearning/scoring"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const MOCK_TESTS_COLLECTION = "mock_tests"
const MOCK_TESTS_INDEX = "mock_tests"

// Question types
const (
	QUESTION_MULTIPLE_CHOICE = scoring.TypeMultipleChoice
	QUESTION_TRUE_FALSE      = scoring.TypeTrueFalse
	QUESTION_MATCHING        = scoring.TypeMatching
	QUESTION_FILL_BLANK      = scoring.TypeFillBlank
	QUESTION_SHORT_ANSWER    = scoring.TypeShortAnswer
)

// Availability
const (
	AVAILABLE_ALL      = "All"
	AVAILABLE_PREMIUM  = "Premium"
	AVAILABLE_SPECIFIC = "Specific"
)

var mockTestModel *MockTestModel

// CorrectAnswer holds single-valued answers (multipleChoice, trueFalse);
// CorrectAnswers holds ordered arrays (matching, fillInTheBlank).
// shortAnswer carries neither and is always manually reviewed
type MockTestQuestion struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Type           string             `json:"type" bson:"type"`
	Question       string             `json:"question" bson:"question"`
	Options        []string           `json:"options,omitempty" bson:"options,omitempty"`
	CorrectAnswer  string             `json:"correct_answer,omitempty" bson:"correct_answer,omitempty"`
	CorrectAnswers []string           `json:"correct_answers,omitempty" bson:"correct_answers,omitempty"`
	Points         int                `json:"points" bson:"points"`
}

type MockTestSection struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Questions []MockTestQuestion `json:"questions" bson:"questions"`
}

type MockTest struct {
	ID              primitive.ObjectID   `json:"_id" bson:"_id,omitempty" example:"637d5de216f58bc8ec7f7f51"`
	Title           string               `json:"title" bson:"title"`
	Description     string               `json:"description,omitempty" bson:"description,omitempty"`
	Language        primitive.ObjectID   `json:"language" bson:"language"`
	Sections        []MockTestSection    `json:"sections" bson:"sections,omitempty"`
	PassScore       float64              `json:"pass_score" bson:"pass_score"`
	Duration        int                  `json:"duration,omitempty" bson:"duration,omitempty"` // Minutes
	AvailableFor    string               `json:"available_for" bson:"available_for" enums:"All,Premium,Specific"`
	SpecificCourses []primitive.ObjectID `json:"specific_courses,omitempty" bson:"specific_courses,omitempty"`
	IsPublished     bool                 `json:"is_published" bson:"is_published"`
	CreatedBy       primitive.ObjectID   `json:"created_by" bson:"created_by"`
	DateUpload      primitive.DateTime   `json:"date_upload" bson:"date_upload" swaggertype:"string"`
	DateUpdate      primitive.DateTime   `json:"date_update" bson:"date_update" swaggertype:"string"`
}

// ElasticSearch Struct - MockTest indexer
type MockTestES struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Language    string    `json:"language"`
	Published   time.Time `json:"published"`
}

type MockTestModel struct {
	CollectionName string
}

func NewModelMockTest(
	test *forms.MockTestForm,
	idUser primitive.ObjectID,
) (*MockTest, error) {
	idObjLanguage, err := primitive.ObjectIDFromHex(test.Language)
	if err != nil {
		return nil, err
	}
	now := primitive.NewDateTimeFromTime(time.Now())

	modelTest := &MockTest{
		Title:        test.Title,
		Description:  test.Description,
		Language:     idObjLanguage,
		PassScore:    test.PassScore,
		Duration:     test.Duration,
		AvailableFor: test.AvailableFor,
		CreatedBy:    idUser,
		DateUpload:   now,
		DateUpdate:   now,
	}
	for _, section := range test.Sections {
		modelSection := MockTestSection{
			ID:    primitive.NewObjectID(),
			Title: section.Title,
		}
		for _, question := range section.Questions {
			modelSection.Questions = append(
				modelSection.Questions,
				NewModelMockTestQuestion(&question),
			)
		}
		modelTest.Sections = append(modelTest.Sections, modelSection)
	}
	for _, idCourse := range test.SpecificCourses {
		idObjCourse, err := primitive.ObjectIDFromHex(idCourse)
		if err != nil {
			return nil, err
		}
		modelTest.SpecificCourses = append(modelTest.SpecificCourses, idObjCourse)
	}
	return modelTest, nil
}

func NewModelMockTestQuestion(question *forms.MockTestQuestionForm) MockTestQuestion {
	modelQuestion := MockTestQuestion{
		ID:       primitive.NewObjectID(),
		Type:     question.Type,
		Question: question.Question,
		Points:   question.Points,
	}
	switch question.Type {
	case QUESTION_MULTIPLE_CHOICE:
		modelQuestion.Options = question.Options
		modelQuestion.CorrectAnswer = question.CorrectAnswer
	case QUESTION_TRUE_FALSE:
		modelQuestion.CorrectAnswer = question.CorrectAnswer
	case QUESTION_MATCHING, QUESTION_FILL_BLANK:
		modelQuestion.Options = question.Options
		modelQuestion.CorrectAnswers = question.CorrectAnswers
	}
	return modelQuestion
}

func (mockTest *MockTestModel) Use() *mongo.Collection {
	return DbConnect.GetCollection(mockTest.CollectionName)
}

func (mockTest *MockTestModel) GetByID(id primitive.ObjectID) *mongo.SingleResult {
	cursor := mockTest.Use().FindOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (mockTest *MockTestModel) GetOne(filter bson.D) *mongo.SingleResult {
	cursor := mockTest.Use().FindOne(db.Ctx, filter)
	return cursor
}

func (mockTest *MockTestModel) GetAll(filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := mockTest.Use().Find(db.Ctx, filter, options)
	return cursor, err
}

func (mockTest *MockTestModel) Aggreagate(pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := mockTest.Use().Aggregate(db.Ctx, pipeline)
	return cursor, err
}

func (mockTest *MockTestModel) NewDocument(data interface{}) (*mongo.InsertOneResult, error) {
	result, err := mockTest.Use().InsertOne(db.Ctx, data)
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
		if collection == MOCK_TESTS_COLLECTION {
			return
		}
	}
	var jsonSchema = bson.M{
		"bsonType": "object",
		"required": []string{
			"title",
			"language",
			"pass_score",
			"available_for",
			"is_published",
			"created_by",
			"date_upload",
			"date_update",
		},
		"properties": bson.M{
			"title":       bson.M{"bsonType": "string", "maxLength": 100},
			"description": bson.M{"bsonType": "string", "maxLength": 1500},
			"language":    bson.M{"bsonType": "objectId"},
			"sections": bson.M{
				"bsonType": bson.A{"array"},
				"items": bson.M{
					"bsonType": "object",
					"required": bson.A{"title", "questions"},
					"properties": bson.M{
						"title": bson.M{"bsonType": "string", "maxLength": 100},
						"questions": bson.M{
							"bsonType": bson.A{"array"},
							"items": bson.M{
								"bsonType": "object",
								"required": bson.A{"type", "question", "points"},
								"properties": bson.M{
									"type": bson.M{"enum": bson.A{
										QUESTION_MULTIPLE_CHOICE,
										QUESTION_TRUE_FALSE,
										QUESTION_MATCHING,
										QUESTION_FILL_BLANK,
										QUESTION_SHORT_ANSWER,
									}},
									"question": bson.M{"bsonType": "string"},
									"options": bson.M{
										"bsonType": bson.A{"array"},
										"items":    bson.M{"bsonType": "string"},
									},
									"correct_answer": bson.M{"bsonType": "string"},
									"correct_answers": bson.M{
										"bsonType": bson.A{"array"},
										"items":    bson.M{"bsonType": "string"},
									},
									"points": bson.M{"bsonType": "int", "minimum": 0},
								},
							},
						},
					},
				},
			},
			"pass_score": bson.M{"bsonType": "double", "minimum": 0},
			"duration":   bson.M{"bsonType": "int", "minimum": 1},
			"available_for": bson.M{"enum": bson.A{
				AVAILABLE_ALL,
				AVAILABLE_PREMIUM,
				AVAILABLE_SPECIFIC,
			}},
			"specific_courses": bson.M{
				"bsonType": bson.A{"array"},
				"items":    bson.M{"bsonType": "objectId"},
			},
			"is_published": bson.M{"bsonType": "bool"},
			"created_by":   bson.M{"bsonType": "objectId"},
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
	err = DbConnect.CreateCollection(MOCK_TESTS_COLLECTION, opts)
	if err != nil {
		panic(err)
	}
}

// ElastichSearch Bulk
func NewBulkMockTest() (esutil.BulkIndexer, error) {
	es, err := db.NewConnectionEs()
	if err != nil {
		return nil, err
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         MOCK_TESTS_INDEX,
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

func NewMockTestModel() Collection {
	if mockTestModel == nil {
		mockTestModel = &MockTestModel{
			CollectionName: MOCK_TESTS_COLLECTION,
		}
	}
	return mockTestModel
}
