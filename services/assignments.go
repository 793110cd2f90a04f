package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/edumesh/Backend_ELearning/db"
	"github.com/edumesh/Backend_ELearning/forms"
	"github.com/edumesh/Backend_ELearning/funct"
	"github.com/edumesh/Backend_ELearning/models"
	"github.com/edumesh/Backend_ELearning/res"
	"github.com/edumesh/Backend_ELearning/utils"
	"github.com/klauspost/compress/zip"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var assignmentsService *AssignmentsService

type AssignmentsService struct{}

func (a *AssignmentsService) getAssignmentFromId(idAssignment string) (*models.Assignment, *res.ErrorRes) {
	idObjAssignment, err := primitive.ObjectIDFromHex(idAssignment)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var assignment *models.Assignment
	cursor := assignmentModel.GetByID(idObjAssignment)
	if err := cursor.Decode(&assignment); err != nil {
		if err.Error() == db.NO_SINGLE_DOCUMENT {
			return nil, &res.ErrorRes{
				Err:        fmt.Errorf("Assignment not found"),
				StatusCode: http.StatusNotFound,
			}
		}
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return assignment, nil
}

func (a *AssignmentsService) SubmitAssignment(
	files []*multipart.FileHeader,
	idAssignment string,
	claims *Claims,
) (map[string]interface{}, *res.ErrorRes) {
	if len(files) == 0 {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("At least one file is required"),
			StatusCode: http.StatusBadRequest,
		}
	}
	assignment, errRes := a.getAssignmentFromId(idAssignment)
	if errRes != nil {
		return nil, errRes
	}
	now := time.Now()
	if assignment.DueDate.Time().Before(now) {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("The due date has passed"),
			StatusCode: http.StatusBadRequest,
		}
	}
	idObjStudent, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	alreadySubmitted := funct.Some(assignment.Submissions, func(submission models.AssignmentSubmission) bool {
		return submission.Student == idObjStudent
	})
	if alreadySubmitted {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("You have already submitted this assignment"),
			StatusCode: http.StatusConflict,
		}
	}
	uploaded := make([]models.UploadedFile, len(files))
	errRes = utils.Concurrency(5, len(files), func(index int, setError func(errRes *res.ErrorRes)) {
		result, err := aws.UploadFile(files[index], "submissions")
		if err != nil {
			setError(&res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusServiceUnavailable,
			})
			return
		}
		uploaded[index] = models.UploadedFile{
			ID:       primitive.NewObjectID(),
			Filename: files[index].Filename,
			Key:      result.Key,
			Location: result.Location,
			Mimetype: files[index].Header.Get("Content-Type"),
			Date:     primitive.NewDateTimeFromTime(now),
		}
	})
	if errRes != nil {
		return nil, errRes
	}
	submission := models.AssignmentSubmission{
		ID:          primitive.NewObjectID(),
		Student:     idObjStudent,
		Files:       uploaded,
		SubmittedAt: primitive.NewDateTimeFromTime(now),
		Status:      models.SUBMISSION_SUBMITTED,
	}
	_, err = assignmentModel.Use().UpdateByID(db.Ctx, assignment.ID, bson.D{
		{
			Key: "$push",
			Value: bson.M{
				"submissions": submission,
			},
		},
		{
			Key: "$set",
			Value: bson.M{
				"date_update": primitive.NewDateTimeFromTime(now),
			},
		},
	})
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return map[string]interface{}{
		"_id": submission.ID.Hex(),
	}, nil
}

func (a *AssignmentsService) GradeSubmission(
	grade *forms.GradeSubmissionForm,
	idAssignment,
	idSubmission string,
	claims *Claims,
) *res.ErrorRes {
	assignment, errRes := a.getAssignmentFromId(idAssignment)
	if errRes != nil {
		return errRes
	}
	course, errRes := NewCoursesService().getCourseFromId(assignment.Course.Hex())
	if errRes != nil {
		return errRes
	}
	if errRes := NewCoursesService().authorizeCourseEdit(course, claims); errRes != nil {
		return errRes
	}
	idObjSubmission, err := primitive.ObjectIDFromHex(idSubmission)
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	index := funct.Index(assignment.Submissions, func(submission models.AssignmentSubmission) bool {
		return submission.ID == idObjSubmission
	})
	if index == -1 {
		return &res.ErrorRes{
			Err:        fmt.Errorf("Submission not found"),
			StatusCode: http.StatusNotFound,
		}
	}
	if *grade.Grade > float64(assignment.MaxPoints) {
		return &res.ErrorRes{
			Err:        fmt.Errorf("Grade exceeds max points"),
			StatusCode: http.StatusBadRequest,
		}
	}
	_, err = assignmentModel.Use().UpdateOne(db.Ctx, bson.D{
		{
			Key:   "_id",
			Value: assignment.ID,
		},
		{
			Key:   "submissions._id",
			Value: idObjSubmission,
		},
	}, bson.D{{
		Key: "$set",
		Value: bson.M{
			"submissions.$.grade":    *grade.Grade,
			"submissions.$.feedback": grade.Feedback,
			"submissions.$.status":   models.SUBMISSION_GRADED,
			"date_update":            primitive.NewDateTimeFromTime(time.Now()),
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

// DownloadSubmissionFiles streams the submission's files as a zip
func (a *AssignmentsService) DownloadSubmissionFiles(
	idAssignment,
	idSubmission string,
	claims *Claims,
	writter io.Writer,
) (*zip.Writer, *res.ErrorRes) {
	assignment, errRes := a.getAssignmentFromId(idAssignment)
	if errRes != nil {
		return nil, errRes
	}
	course, errRes := NewCoursesService().getCourseFromId(assignment.Course.Hex())
	if errRes != nil {
		return nil, errRes
	}
	if errRes := NewCoursesService().authorizeCourseEdit(course, claims); errRes != nil {
		return nil, errRes
	}
	idObjSubmission, err := primitive.ObjectIDFromHex(idSubmission)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	index := funct.Index(assignment.Submissions, func(submission models.AssignmentSubmission) bool {
		return submission.ID == idObjSubmission
	})
	if index == -1 {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("Submission not found"),
			StatusCode: http.StatusNotFound,
		}
	}
	submission := assignment.Submissions[index]
	if len(submission.Files) == 0 {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("The submission has no files"),
			StatusCode: http.StatusBadRequest,
		}
	}
	// Download files AWS
	type File struct {
		file io.ReadCloser
		name string
	}
	files := make([]File, len(submission.Files))
	if errRes := utils.Concurrency(5, len(submission.Files), func(index int, setError func(errRes *res.ErrorRes)) {
		body, err := aws.GetFile(submission.Files[index].Key)
		if err != nil {
			setError(&res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusServiceUnavailable,
			})
			return
		}
		files[index] = File{
			file: body,
			name: submission.Files[index].Filename,
		}
	}); errRes != nil {
		return nil, errRes
	}
	// Create zip archive
	zipWritter := zip.NewWriter(writter)
	for _, file := range files {
		zipFile, err := zipWritter.Create(file.name)
		if err != nil {
			return nil, &res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusInternalServerError,
			}
		}
		body, err := io.ReadAll(file.file)
		if err != nil {
			return nil, &res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusInternalServerError,
			}
		}
		_, err = zipFile.Write(body)
		if err != nil {
			return nil, &res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusInternalServerError,
			}
		}
	}
	return zipWritter, nil
}

func NewAssignmentsService() *AssignmentsService {
	if assignmentsService == nil {
		assignmentsService = &AssignmentsService{}
	}
	return assignmentsService
}
