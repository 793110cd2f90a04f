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
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var coursesService *CoursesService

type CoursesService struct{}

func (c *CoursesService) getCourseFromId(idCourse string) (*models.Course, *res.ErrorRes) {
	idObjCourse, err := primitive.ObjectIDFromHex(idCourse)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var course *models.Course
	cursor := courseModel.GetByID(idObjCourse)
	if err := cursor.Decode(&course); err != nil {
		if err.Error() == db.NO_SINGLE_DOCUMENT {
			return nil, &res.ErrorRes{
				Err:        fmt.Errorf("course not found"),
				StatusCode: http.StatusNotFound,
			}
		}
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return course, nil
}

// isAdmin || course.instructor == caller
func (c *CoursesService) authorizeCourseEdit(
	course *models.Course,
	claims *Claims,
) *res.ErrorRes {
	if claims.UserType == models.ADMIN {
		return nil
	}
	if course.Instructor.Hex() == claims.ID {
		return nil
	}
	return &res.ErrorRes{
		Err:        fmt.Errorf("You are not authorized to modify this course"),
		StatusCode: http.StatusForbidden,
	}
}

func (c *CoursesService) CreateCourse(
	course *forms.CourseForm,
	claims *Claims,
) (map[string]interface{}, *res.ErrorRes) {
	idObjInstructor, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	modelCourse, err := models.NewModelCourse(course, idObjInstructor)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	inserted, err := courseModel.NewDocument(modelCourse)
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

func (c *CoursesService) GetCourses(claims *Claims) ([]models.Course, *res.ErrorRes) {
	filter := bson.D{{
		Key:   "status",
		Value: models.COURSE_PUBLISHED,
	}}
	if claims.UserType == models.ADMIN {
		filter = bson.D{}
	} else if claims.UserType == models.INSTRUCTOR {
		idObjInstructor, err := primitive.ObjectIDFromHex(claims.ID)
		if err != nil {
			return nil, &res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusBadRequest,
			}
		}
		filter = bson.D{{
			Key:   "instructor",
			Value: idObjInstructor,
		}}
	}
	opts := options.Find().SetSort(bson.D{{
		Key:   "date_upload",
		Value: -1,
	}})
	cursor, err := courseModel.GetAll(filter, opts)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var courses []models.Course
	if err := cursor.All(db.Ctx, &courses); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return courses, nil
}

func (c *CoursesService) GetCourse(idCourse string) (*models.Course, *res.ErrorRes) {
	return c.getCourseFromId(idCourse)
}

func (c *CoursesService) UpdateStatus(
	idCourse string,
	status *forms.CourseStatusForm,
	claims *Claims,
) *res.ErrorRes {
	course, errRes := c.getCourseFromId(idCourse)
	if errRes != nil {
		return errRes
	}
	if errRes := c.authorizeCourseEdit(course, claims); errRes != nil {
		return errRes
	}
	_, err := courseModel.Use().UpdateByID(db.Ctx, course.ID, bson.D{{
		Key: "$set",
		Value: bson.M{
			"status":      status.Status,
			"date_update": primitive.NewDateTimeFromTime(time.Now()),
		},
	}})
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	// Search index follows the published flag
	if status.Status == models.COURSE_PUBLISHED {
		return c.indexCourse(course)
	}
	if course.Status == models.COURSE_PUBLISHED {
		return c.deleteCourseIndex(course.ID.Hex())
	}
	return nil
}

// GetLanguages lists the platform languages courses and mock tests point at
func (c *CoursesService) GetLanguages() ([]models.Language, *res.ErrorRes) {
	opts := options.Find().SetSort(bson.D{{
		Key:   "language",
		Value: 1,
	}})
	cursor, err := languageModel.GetAll(bson.D{}, opts)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var languages []models.Language
	if err := cursor.All(db.Ctx, &languages); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return languages, nil
}

// Search queries the courses and mock tests indices
func (c *CoursesService) Search(search string) (interface{}, *res.ErrorRes) {
	simpleQuery := fmt.Sprintf(
		`"simple_query_string": { "query": "%s*", "analyzer": "standard" }`,
		search,
	)
	query := db.ConstructQuery(simpleQuery)
	es, err := db.NewConnectionEs()
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	response, err := es.Search(
		es.Search.WithContext(context.Background()),
		es.Search.WithIndex(models.COURSES_INDEX, models.MOCK_TESTS_INDEX),
		es.Search.WithBody(query),
		es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	defer response.Body.Close()
	var mapRes map[string]interface{}
	if err := json.NewDecoder(response.Body).Decode(&mapRes); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusInternalServerError,
		}
	}
	return mapRes["hits"], nil
}

func (c *CoursesService) indexCourse(course *models.Course) *res.ErrorRes {
	indexerCourse := &models.CourseES{
		Title:       course.Title,
		Description: course.Description,
		Level:       course.Level,
		Language:    course.Language.Hex(),
		Instructor:  course.Instructor.Hex(),
		Price:       course.Price,
		Published:   time.Now(),
	}
	data, err := json.Marshal(indexerCourse)
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusInternalServerError,
		}
	}
	// Add item to the BulkIndexer
	bi, err := models.NewBulkCourse()
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
			DocumentID: course.ID.Hex(),
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

func (c *CoursesService) deleteCourseIndex(idCourse string) *res.ErrorRes {
	bi, err := models.NewBulkCourse()
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
			DocumentID: idCourse,
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

func NewCoursesService() *CoursesService {
	if coursesService == nil {
		coursesService = &CoursesService{}
	}
	return coursesService
}
