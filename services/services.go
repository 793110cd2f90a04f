package services

import (
	"encoding/json"

	"github.com/edumesh/Backend_ELearning/aws_s3"
	"github.com/edumesh/Backend_ELearning/models"
	"github.com/edumesh/Backend_ELearning/settings"
	"github.com/edumesh/Backend_ELearning/stack"
	"github.com/google/uuid"
)

// Models
var courseModel = models.NewCourseModel()
var sectionModel = models.NewSectionModel()
var lectureModel = models.NewLectureModel()
var quizModel = models.NewQuizModel()
var liveSessionModel = models.NewLiveSessionModel()
var assignmentModel = models.NewAssignmentModel()
var mockTestModel = models.NewMockTestModel()
var attemptModel = models.NewMockTestAttemptModel()
var purchaseModel = models.NewCoursePurchaseModel()
var userModel = models.NewUserModel()
var languageModel = models.NewLanguageModel()

// Packages
var nats = stack.NewNats()
var aws = aws_s3.NewAWSS3()

// Settings
var settingsData = settings.GetSettings()

func formatRequestToNodeNats(data interface{}) ([]byte, error) {
	id, err := uuid.NewUUID()
	if err != nil {
		return nil, err
	}
	request := make(map[string]interface{})
	request["id"] = id.String()
	if data != nil {
		request["data"] = data
	}
	jsonMarshal, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	return jsonMarshal, nil
}
