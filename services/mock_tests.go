package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/edumesh/Backend_ELearning/db"
	"github.com/edumesh/Backend_ELearning/forms"
	"github.com/edumesh/Backend_ELearning/models"
	"github.com/edumesh/Backend_ELearning/res"
	"github.com/edumesh/Backend_ELearning/scoring"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var mockTestsService *MockTestsService

type MockTestsService struct{}

func (m *MockTestsService) getMockTestFromId(idTest string) (*models.MockTest, *res.ErrorRes) {
	idObjTest, err := primitive.ObjectIDFromHex(idTest)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var test *models.MockTest
	cursor := mockTestModel.GetByID(idObjTest)
	if err := cursor.Decode(&test); err != nil {
		if err.Error() == db.NO_SINGLE_DOCUMENT {
			return nil, &res.ErrorRes{
				Err:        fmt.Errorf("Mock test not found"),
				StatusCode: http.StatusNotFound,
			}
		}
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return test, nil
}

func (m *MockTestsService) CreateMockTest(
	test *forms.MockTestForm,
	claims *Claims,
) (map[string]interface{}, *res.ErrorRes) {
	idObjUser, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	modelTest, err := models.NewModelMockTest(test, idObjUser)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	inserted, err := mockTestModel.NewDocument(modelTest)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return map[string]interface{}{
		"_id": inserted.InsertedID.(primitive.ObjectID).Hex(),
	}, nil
}

// GetMockTests lists published tests; admins and instructors see drafts too
func (m *MockTestsService) GetMockTests(claims *Claims) ([]models.MockTest, *res.ErrorRes) {
	filter := bson.D{{
		Key:   "is_published",
		Value: true,
	}}
	if claims.UserType == models.ADMIN || claims.UserType == models.INSTRUCTOR {
		filter = bson.D{}
	}
	opts := options.Find().SetSort(bson.D{{
		Key:   "date_upload",
		Value: -1,
	}})
	cursor, err := mockTestModel.GetAll(filter, opts)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var tests []models.MockTest
	if err := cursor.All(db.Ctx, &tests); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	// Students never see the answer key
	if claims.UserType == models.STUDENT {
		for i := range tests {
			stripAnswerKey(&tests[i])
		}
	}
	return tests, nil
}

func (m *MockTestsService) GetMockTest(idTest string, claims *Claims) (*models.MockTest, *res.ErrorRes) {
	test, errRes := m.getMockTestFromId(idTest)
	if errRes != nil {
		return nil, errRes
	}
	if !test.IsPublished && claims.UserType == models.STUDENT {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("Mock test not found"),
			StatusCode: http.StatusNotFound,
		}
	}
	if claims.UserType == models.STUDENT {
		stripAnswerKey(test)
	}
	return test, nil
}

func stripAnswerKey(test *models.MockTest) {
	for i := range test.Sections {
		for j := range test.Sections[i].Questions {
			test.Sections[i].Questions[j].CorrectAnswer = ""
			test.Sections[i].Questions[j].CorrectAnswers = nil
		}
	}
}

func (m *MockTestsService) UpdateMockTest(
	form *forms.UpdateMockTestForm,
	idTest string,
	claims *Claims,
) *res.ErrorRes {
	test, errRes := m.getMockTestFromId(idTest)
	if errRes != nil {
		return errRes
	}
	if test.IsPublished && form.Sections != nil {
		return &res.ErrorRes{
			Err:        fmt.Errorf("Sections cannot be changed on a published mock test"),
			StatusCode: http.StatusBadRequest,
		}
	}
	update := bson.M{
		"date_update": primitive.NewDateTimeFromTime(time.Now()),
	}
	if form.Title != "" {
		update["title"] = form.Title
	}
	if form.Description != "" {
		update["description"] = form.Description
	}
	if form.PassScore != nil {
		update["pass_score"] = *form.PassScore
	}
	if form.Duration > 0 {
		update["duration"] = form.Duration
	}
	if form.AvailableFor != "" {
		update["available_for"] = form.AvailableFor
	}
	if form.SpecificCourses != nil {
		var idObjCourses []primitive.ObjectID
		for _, idCourse := range form.SpecificCourses {
			idObjCourse, err := primitive.ObjectIDFromHex(idCourse)
			if err != nil {
				return &res.ErrorRes{
					Err:        err,
					StatusCode: http.StatusBadRequest,
				}
			}
			idObjCourses = append(idObjCourses, idObjCourse)
		}
		update["specific_courses"] = idObjCourses
	}
	if form.Sections != nil {
		var sections []models.MockTestSection
		for _, section := range form.Sections {
			modelSection := models.MockTestSection{
				ID:    primitive.NewObjectID(),
				Title: section.Title,
			}
			for _, question := range section.Questions {
				modelSection.Questions = append(
					modelSection.Questions,
					models.NewModelMockTestQuestion(&question),
				)
			}
			sections = append(sections, modelSection)
		}
		update["sections"] = sections
	}
	_, err := mockTestModel.Use().UpdateByID(db.Ctx, test.ID, bson.D{{
		Key:   "$set",
		Value: update,
	}})
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return nil
}

func (m *MockTestsService) DeleteMockTest(idTest string) *res.ErrorRes {
	test, errRes := m.getMockTestFromId(idTest)
	if errRes != nil {
		return errRes
	}
	if test.IsPublished {
		if errRes := m.deleteMockTestIndex(test.ID.Hex()); errRes != nil {
			return errRes
		}
	}
	_, err := mockTestModel.Use().DeleteOne(db.Ctx, bson.D{{
		Key:   "_id",
		Value: test.ID,
	}})
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return nil
}

// TogglePublishStatus flips is_published. Publishing requires at least one
// section and at least one question in every section
func (m *MockTestsService) TogglePublishStatus(idTest string) (map[string]interface{}, *res.ErrorRes) {
	test, errRes := m.getMockTestFromId(idTest)
	if errRes != nil {
		return nil, errRes
	}
	if !test.IsPublished {
		if err := scoring.ValidatePublishable(scoringSections(test)); err != nil {
			if err == scoring.ErrNoSections {
				return nil, &res.ErrorRes{
					Err:        fmt.Errorf("Cannot publish a mock test without sections"),
					StatusCode: http.StatusBadRequest,
				}
			}
			return nil, &res.ErrorRes{
				Err:        fmt.Errorf("Cannot publish a mock test with empty sections"),
				StatusCode: http.StatusBadRequest,
			}
		}
	}
	published := !test.IsPublished
	_, err := mockTestModel.Use().UpdateByID(db.Ctx, test.ID, bson.D{{
		Key: "$set",
		Value: bson.M{
			"is_published": published,
			"date_update":  primitive.NewDateTimeFromTime(time.Now()),
		},
	}})
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if published {
		if errRes := m.indexMockTest(test); errRes != nil {
			return nil, errRes
		}
	} else {
		if errRes := m.deleteMockTestIndex(test.ID.Hex()); errRes != nil {
			return nil, errRes
		}
	}
	return map[string]interface{}{
		"is_published": published,
	}, nil
}

func (m *MockTestsService) indexMockTest(test *models.MockTest) *res.ErrorRes {
	indexerTest := &models.MockTestES{
		Title:       test.Title,
		Description: test.Description,
		Language:    test.Language.Hex(),
		Published:   time.Now(),
	}
	data, err := json.Marshal(indexerTest)
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusInternalServerError,
		}
	}
	// Add item to the BulkIndexer
	bi, err := models.NewBulkMockTest()
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	err = bi.Add(
		context.Background(),
		esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: test.ID.Hex(),
			Body:       bytes.NewReader(data),
		},
	)
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if err := bi.Close(context.Background()); err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return nil
}

func (m *MockTestsService) deleteMockTestIndex(idTest string) *res.ErrorRes {
	bi, err := models.NewBulkMockTest()
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	err = bi.Add(
		context.Background(),
		esutil.BulkIndexerItem{
			Action:     "delete",
			DocumentID: idTest,
		},
	)
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if err := bi.Close(context.Background()); err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return nil
}

func NewMockTestsService() *MockTestsService {
	if mockTestsService == nil {
		mockTestsService = &MockTestsService{}
	}
	return mockTestsService
}
