package services

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/edumesh/Backend_ELearning/db"
	"github.com/edumesh/Backend_ELearning/forms"
	"github.com/edumesh/Backend_ELearning/models"
	"github.com/edumesh/Backend_ELearning/res"
	"github.com/edumesh/Backend_ELearning/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var sectionsService *SectionsService

type SectionsService struct{}

func (s *SectionsService) getSectionFromId(
	idSection string,
	idObjCourse primitive.ObjectID,
) (*models.CourseSection, *res.ErrorRes) {
	idObjSection, err := primitive.ObjectIDFromHex(idSection)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var section *models.CourseSection
	cursor := sectionModel.GetByID(idObjSection)
	if err := cursor.Decode(&section); err != nil {
		if err.Error() == db.NO_SINGLE_DOCUMENT {
			return nil, &res.ErrorRes{
				Err:        fmt.Errorf("Section not found"),
				StatusCode: http.StatusNotFound,
			}
		}
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if section.Course != idObjCourse {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("Section not found"),
			StatusCode: http.StatusNotFound,
		}
	}
	return section, nil
}

// nextOrder derives order as max(existing)+1, starting at 1
func (s *SectionsService) nextOrder(idObjCourse primitive.ObjectID) (int, *res.ErrorRes) {
	opts := options.Find().SetSort(bson.D{{
		Key:   "order",
		Value: -1,
	}}).SetLimit(1)
	cursor, err := sectionModel.GetAll(bson.D{{
		Key:   "course",
		Value: idObjCourse,
	}}, opts)
	if err != nil {
		return 0, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var sections []models.CourseSection
	if err := cursor.All(db.Ctx, &sections); err != nil {
		return 0, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if len(sections) == 0 {
		return 1, nil
	}
	return sections[0].Order + 1, nil
}

func (s *SectionsService) GetSections(idCourse string) ([]models.CourseSection, *res.ErrorRes) {
	course, errRes := NewCoursesService().getCourseFromId(idCourse)
	if errRes != nil {
		return nil, errRes
	}
	opts := options.Find().SetSort(bson.D{{
		Key:   "order",
		Value: 1,
	}})
	cursor, err := sectionModel.GetAll(bson.D{{
		Key:   "course",
		Value: course.ID,
	}}, opts)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var sections []models.CourseSection
	if err := cursor.All(db.Ctx, &sections); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return sections, nil
}

func (s *SectionsService) CreateSection(
	section *forms.SectionForm,
	idCourse string,
	claims *Claims,
) (map[string]interface{}, *res.ErrorRes) {
	if strings.TrimSpace(section.Title) == "" {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("Section title is required"),
			StatusCode: http.StatusBadRequest,
		}
	}
	course, errRes := NewCoursesService().getCourseFromId(idCourse)
	if errRes != nil {
		return nil, errRes
	}
	if errRes := NewCoursesService().authorizeCourseEdit(course, claims); errRes != nil {
		return nil, errRes
	}
	order := section.Order
	if order == 0 {
		var errRes *res.ErrorRes
		order, errRes = s.nextOrder(course.ID)
		if errRes != nil {
			return nil, errRes
		}
	}
	idObjUser, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	modelSection := models.NewModelSection(section, order, course.ID, idObjUser)
	inserted, err := sectionModel.NewDocument(modelSection)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return map[string]interface{}{
		"_id":   inserted.InsertedID.(primitive.ObjectID).Hex(),
		"order": order,
	}, nil
}

func (s *SectionsService) UpdateSection(
	section *forms.UpdateSectionForm,
	idCourse,
	idSection string,
	claims *Claims,
) *res.ErrorRes {
	course, errRes := NewCoursesService().getCourseFromId(idCourse)
	if errRes != nil {
		return errRes
	}
	if errRes := NewCoursesService().authorizeCourseEdit(course, claims); errRes != nil {
		return errRes
	}
	sectionData, errRes := s.getSectionFromId(idSection, course.ID)
	if errRes != nil {
		return errRes
	}
	update := bson.M{
		"date_update": primitive.NewDateTimeFromTime(time.Now()),
	}
	if section.Title != "" {
		update["title"] = section.Title
	}
	if section.Summary != "" {
		update["summary"] = section.Summary
	}
	if section.Order > 0 {
		update["order"] = section.Order
	}
	if section.IsPublished != nil {
		update["is_published"] = *section.IsPublished
	}
	_, err := sectionModel.Use().UpdateByID(db.Ctx, sectionData.ID, bson.D{{
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

func (s *SectionsService) DeleteSection(
	idCourse,
	idSection string,
	claims *Claims,
) *res.ErrorRes {
	course, errRes := NewCoursesService().getCourseFromId(idCourse)
	if errRes != nil {
		return errRes
	}
	if errRes := NewCoursesService().authorizeCourseEdit(course, claims); errRes != nil {
		return errRes
	}
	section, errRes := s.getSectionFromId(idSection, course.ID)
	if errRes != nil {
		return errRes
	}
	// Content documents stay; only the ordering container goes away
	_, err := sectionModel.Use().DeleteOne(db.Ctx, bson.D{{
		Key:   "_id",
		Value: section.ID,
	}})
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return nil
}

// appendContent mirrors the new child id on the section and the course.
// Two writes, no transaction; a crash in between leaves the course array
// one id behind
func (s *SectionsService) appendContent(
	idObjSection,
	idObjCourse primitive.ObjectID,
	field string,
	idContent primitive.ObjectID,
	mirrorOnCourse bool,
) *res.ErrorRes {
	now := primitive.NewDateTimeFromTime(time.Now())
	_, err := sectionModel.Use().UpdateByID(db.Ctx, idObjSection, bson.D{
		{
			Key: "$push",
			Value: bson.M{
				field: idContent,
			},
		},
		{
			Key: "$set",
			Value: bson.M{
				"date_update": now,
			},
		},
	})
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if !mirrorOnCourse {
		return nil
	}
	_, err = courseModel.Use().UpdateByID(db.Ctx, idObjCourse, bson.D{
		{
			Key: "$push",
			Value: bson.M{
				field: idContent,
			},
		},
		{
			Key: "$set",
			Value: bson.M{
				"date_update": now,
			},
		},
	})
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return nil
}

func (s *SectionsService) uploadedFileFromHeader(
	file *multipart.FileHeader,
	folder string,
) (*models.UploadedFile, error) {
	result, err := aws.UploadFile(file, folder)
	if err != nil {
		return nil, err
	}
	return &models.UploadedFile{
		ID:       primitive.NewObjectID(),
		Filename: file.Filename,
		Key:      result.Key,
		Location: result.Location,
		Mimetype: file.Header.Get("Content-Type"),
		Date:     primitive.NewDateTimeFromTime(time.Now()),
	}, nil
}

func (s *SectionsService) AddLesson(
	lesson *forms.LessonForm,
	featuredImage,
	videoFile *multipart.FileHeader,
	exerciseFiles []*multipart.FileHeader,
	idCourse,
	idSection string,
	claims *Claims,
) (map[string]interface{}, *res.ErrorRes) {
	course, errRes := NewCoursesService().getCourseFromId(idCourse)
	if errRes != nil {
		return nil, errRes
	}
	if errRes := NewCoursesService().authorizeCourseEdit(course, claims); errRes != nil {
		return nil, errRes
	}
	section, errRes := s.getSectionFromId(idSection, course.ID)
	if errRes != nil {
		return nil, errRes
	}
	modelLecture := models.NewModelLecture(lesson, len(section.Lessons)+1, course.ID)
	if featuredImage != nil {
		uploaded, err := s.uploadedFileFromHeader(featuredImage, "featuredImage")
		if err != nil {
			return nil, &res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusServiceUnavailable,
			}
		}
		modelLecture.FeaturedImage = uploaded
	}
	if videoFile != nil {
		uploaded, err := s.uploadedFileFromHeader(videoFile, "videoFile")
		if err != nil {
			return nil, &res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusServiceUnavailable,
			}
		}
		modelLecture.Video = uploaded
	}
	if len(exerciseFiles) > 0 {
		uploaded := make([]models.UploadedFile, len(exerciseFiles))
		errRes := utils.Concurrency(5, len(exerciseFiles), func(index int, setError func(errRes *res.ErrorRes)) {
			file, err := s.uploadedFileFromHeader(exerciseFiles[index], "exerciseFiles")
			if err != nil {
				setError(&res.ErrorRes{
					Err:        err,
					StatusCode: http.StatusServiceUnavailable,
				})
				return
			}
			uploaded[index] = *file
		})
		if errRes != nil {
			return nil, errRes
		}
		modelLecture.ExerciseFiles = uploaded
	}
	inserted, err := lectureModel.NewDocument(modelLecture)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	idLecture := inserted.InsertedID.(primitive.ObjectID)
	if errRes := s.appendContent(section.ID, course.ID, "lessons", idLecture, true); errRes != nil {
		return nil, errRes
	}
	return map[string]interface{}{
		"_id": idLecture.Hex(),
	}, nil
}

func (s *SectionsService) AddQuiz(
	quiz *forms.QuizForm,
	idCourse,
	idSection string,
	claims *Claims,
) (map[string]interface{}, *res.ErrorRes) {
	course, errRes := NewCoursesService().getCourseFromId(idCourse)
	if errRes != nil {
		return nil, errRes
	}
	if errRes := NewCoursesService().authorizeCourseEdit(course, claims); errRes != nil {
		return nil, errRes
	}
	section, errRes := s.getSectionFromId(idSection, course.ID)
	if errRes != nil {
		return nil, errRes
	}
	modelQuiz := models.NewModelQuiz(quiz, course.ID)
	inserted, err := quizModel.NewDocument(modelQuiz)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	idQuiz := inserted.InsertedID.(primitive.ObjectID)
	if errRes := s.appendContent(section.ID, course.ID, "quizzes", idQuiz, true); errRes != nil {
		return nil, errRes
	}
	return map[string]interface{}{
		"_id": idQuiz.Hex(),
	}, nil
}

func (s *SectionsService) AddAssignment(
	assignment *forms.AssignmentForm,
	attachments []*multipart.FileHeader,
	idCourse,
	idSection string,
	claims *Claims,
) (map[string]interface{}, *res.ErrorRes) {
	course, errRes := NewCoursesService().getCourseFromId(idCourse)
	if errRes != nil {
		return nil, errRes
	}
	if errRes := NewCoursesService().authorizeCourseEdit(course, claims); errRes != nil {
		return nil, errRes
	}
	section, errRes := s.getSectionFromId(idSection, course.ID)
	if errRes != nil {
		return nil, errRes
	}
	modelAssignment, err := models.NewModelAssignment(assignment, course.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	if len(attachments) > 0 {
		uploaded := make([]models.UploadedFile, len(attachments))
		errRes := utils.Concurrency(5, len(attachments), func(index int, setError func(errRes *res.ErrorRes)) {
			file, err := s.uploadedFileFromHeader(attachments[index], "attachments")
			if err != nil {
				setError(&res.ErrorRes{
					Err:        err,
					StatusCode: http.StatusServiceUnavailable,
				})
				return
			}
			uploaded[index] = *file
		})
		if errRes != nil {
			return nil, errRes
		}
		modelAssignment.Attachments = uploaded
	}
	inserted, err := assignmentModel.NewDocument(modelAssignment)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	idAssignment := inserted.InsertedID.(primitive.ObjectID)
	if errRes := s.appendContent(section.ID, course.ID, "assignments", idAssignment, true); errRes != nil {
		return nil, errRes
	}
	return map[string]interface{}{
		"_id": idAssignment.Hex(),
	}, nil
}

func (s *SectionsService) AddLiveLesson(
	liveLesson *forms.LiveLessonForm,
	idCourse,
	idSection string,
	claims *Claims,
) (map[string]interface{}, *res.ErrorRes) {
	course, errRes := NewCoursesService().getCourseFromId(idCourse)
	if errRes != nil {
		return nil, errRes
	}
	if errRes := NewCoursesService().authorizeCourseEdit(course, claims); errRes != nil {
		return nil, errRes
	}
	section, errRes := s.getSectionFromId(idSection, course.ID)
	if errRes != nil {
		return nil, errRes
	}
	idObjHost, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	modelLiveSession, err := models.NewModelLiveSession(liveLesson, course.ID, idObjHost)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	inserted, err := liveSessionModel.NewDocument(modelLiveSession)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	idLiveSession := inserted.InsertedID.(primitive.ObjectID)
	// Live lessons only live on the section; the course has no mirror array
	if errRes := s.appendContent(section.ID, course.ID, "live_lessons", idLiveSession, false); errRes != nil {
		return nil, errRes
	}
	return map[string]interface{}{
		"_id": idLiveSession.Hex(),
	}, nil
}

func NewSectionsService() *SectionsService {
	if sectionsService == nil {
		sectionsService = &SectionsService{}
	}
	return sectionsService
}
