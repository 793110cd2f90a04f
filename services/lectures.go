package services

import (
	"fmt"
	"net/http"
	"time"

	"github.com/edumesh/Backend_ELearning/db"
	"github.com/edumesh/Backend_ELearning/funct"
	"github.com/edumesh/Backend_ELearning/models"
	"github.com/edumesh/Backend_ELearning/res"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var lecturesService *LecturesService

type LecturesService struct{}

func (l *LecturesService) getLectureFromId(
	idLecture string,
	idObjCourse primitive.ObjectID,
) (*models.Lecture, *res.ErrorRes) {
	idObjLecture, err := primitive.ObjectIDFromHex(idLecture)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var lecture *models.Lecture
	cursor := lectureModel.GetByID(idObjLecture)
	if err := cursor.Decode(&lecture); err != nil {
		if err.Error() == db.NO_SINGLE_DOCUMENT {
			return nil, &res.ErrorRes{
				Err:        fmt.Errorf("Lesson not found"),
				StatusCode: http.StatusNotFound,
			}
		}
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if lecture.Course != idObjCourse {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("Lesson not found"),
			StatusCode: http.StatusNotFound,
		}
	}
	return lecture, nil
}

// CompleteLecture marks the lesson done for the caller. Repeat calls are
// no-ops
func (l *LecturesService) CompleteLecture(
	idCourse,
	idLecture string,
	claims *Claims,
) *res.ErrorRes {
	course, errRes := NewCoursesService().getCourseFromId(idCourse)
	if errRes != nil {
		return errRes
	}
	lecture, errRes := l.getLectureFromId(idLecture, course.ID)
	if errRes != nil {
		return errRes
	}
	idObjUser, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	alreadyDone := funct.Some(lecture.CompletedBy, func(completion models.LectureCompletion) bool {
		return completion.User == idObjUser
	})
	if alreadyDone {
		return nil
	}
	_, err = lectureModel.Use().UpdateByID(db.Ctx, lecture.ID, bson.D{{
		Key: "$push",
		Value: bson.M{
			"completed_by": models.LectureCompletion{
				User:        idObjUser,
				CompletedAt: primitive.NewDateTimeFromTime(time.Now()),
			},
		},
	}})
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return nil
}

func NewLecturesService() *LecturesService {
	if lecturesService == nil {
		lecturesService = &LecturesService{}
	}
	return lecturesService
}
