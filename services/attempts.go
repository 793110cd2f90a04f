package services

import (
	"fmt"
	"net/http"
	"time"

	"github.com/edumesh/Backend_ELearning/db"
	"github.com/edumesh/Backend_ELearning/forms"
	"github.com/edumesh/Backend_ELearning/funct"
	"github.com/edumesh/Backend_ELearning/models"
	"github.com/edumesh/Backend_ELearning/res"
	"github.com/edumesh/Backend_ELearning/scoring"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var attemptsService *AttemptsService

type AttemptsService struct{}

func (a *AttemptsService) getAttemptFromId(idAttempt string) (*models.MockTestAttempt, *res.ErrorRes) {
	idObjAttempt, err := primitive.ObjectIDFromHex(idAttempt)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var attempt *models.MockTestAttempt
	cursor := attemptModel.GetByID(idObjAttempt)
	if err := cursor.Decode(&attempt); err != nil {
		if err.Error() == db.NO_SINGLE_DOCUMENT {
			return nil, &res.ErrorRes{
				Err:        fmt.Errorf("Attempt not found"),
				StatusCode: http.StatusNotFound,
			}
		}
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return attempt, nil
}

func (a *AttemptsService) authorizeAvailability(
	test *models.MockTest,
	claims *Claims,
) *res.ErrorRes {
	if claims.UserType == models.ADMIN || claims.UserType == models.INSTRUCTOR {
		return nil
	}
	switch test.AvailableFor {
	case models.AVAILABLE_ALL:
		return nil
	case models.AVAILABLE_PREMIUM:
		if claims.Subscription == models.SUBSCRIPTION_PREMIUM {
			return nil
		}
		return &res.ErrorRes{
			Err:        fmt.Errorf("This mock test requires a premium subscription"),
			StatusCode: http.StatusForbidden,
		}
	case models.AVAILABLE_SPECIFIC:
		idObjUser, err := primitive.ObjectIDFromHex(claims.ID)
		if err != nil {
			return &res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusBadRequest,
			}
		}
		var user *models.User
		cursor := userModel.GetByID(idObjUser)
		if err := cursor.Decode(&user); err != nil {
			return &res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusServiceUnavailable,
			}
		}
		enrolled := funct.Some(test.SpecificCourses, func(idCourse primitive.ObjectID) bool {
			return funct.Some(user.EnrolledCourses, func(idEnrolled primitive.ObjectID) bool {
				return idEnrolled == idCourse
			})
		})
		if enrolled {
			return nil
		}
		return &res.ErrorRes{
			Err:        fmt.Errorf("This mock test is restricted to specific courses"),
			StatusCode: http.StatusForbidden,
		}
	}
	return nil
}

// StartAttempt opens an attempt. An incomplete attempt for the same test is
// resumed instead of opening a second one
func (a *AttemptsService) StartAttempt(
	idTest string,
	claims *Claims,
) (map[string]interface{}, *res.ErrorRes) {
	test, errRes := NewMockTestsService().getMockTestFromId(idTest)
	if errRes != nil {
		return nil, errRes
	}
	if !test.IsPublished {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("Mock test is not published"),
			StatusCode: http.StatusBadRequest,
		}
	}
	if errRes := a.authorizeAvailability(test, claims); errRes != nil {
		return nil, errRes
	}
	idObjUser, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var existing *models.MockTestAttempt
	cursor := attemptModel.GetOne(bson.D{
		{
			Key:   "user",
			Value: idObjUser,
		},
		{
			Key:   "mock_test",
			Value: test.ID,
		},
		{
			Key:   "completed",
			Value: false,
		},
	})
	if err := cursor.Decode(&existing); err == nil {
		return map[string]interface{}{
			"_id":        existing.ID.Hex(),
			"start_time": existing.StartTime.Time(),
			"resumed":    true,
		}, nil
	} else if err.Error() != db.NO_SINGLE_DOCUMENT {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	modelAttempt := models.NewModelMockTestAttempt(idObjUser, test.ID)
	inserted, err := attemptModel.NewDocument(modelAttempt)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	idAttempt := inserted.InsertedID.(primitive.ObjectID)
	// Timed tests get auto-closed by the notifications service
	if test.Duration > 0 {
		nats.PublishEncode("mock_tests/close_attempt", map[string]interface{}{
			"attempt":  idAttempt.Hex(),
			"duration": test.Duration,
		})
	}
	return map[string]interface{}{
		"_id":        idAttempt.Hex(),
		"start_time": modelAttempt.StartTime.Time(),
		"resumed":    false,
	}, nil
}

// SubmitAnswers grades the attempt. Answers pointing at unknown questions
// are skipped and reported back as warnings
func (a *AttemptsService) SubmitAnswers(
	form *forms.SubmitAnswersForm,
	idAttempt string,
	claims *Claims,
) (map[string]interface{}, *res.ErrorRes) {
	attempt, errRes := a.getAttemptFromId(idAttempt)
	if errRes != nil {
		return nil, errRes
	}
	if attempt.User.Hex() != claims.ID {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("This attempt belongs to another user"),
			StatusCode: http.StatusForbidden,
		}
	}
	if attempt.Completed {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("Attempt already completed"),
			StatusCode: http.StatusBadRequest,
		}
	}
	test, errRes := NewMockTestsService().getMockTestFromId(attempt.MockTest.Hex())
	if errRes != nil {
		return nil, errRes
	}
	var submitted []scoring.Answer
	for _, answer := range form.Answers {
		submitted = append(submitted, scoring.Answer{
			Question: answer.Question,
			Answer:   answer.Answer,
			Answers:  answer.Answers,
		})
	}
	result := scoring.Grade(scoringSections(test), submitted)
	answers := answersFromScoring(result.Answers)
	sectionScores := sectionScoresFromScoring(result.SectionScores)
	totalScore := result.TotalScore
	warnings := result.Warnings
	endTime := time.Now()
	if form.EndTime != "" {
		parsed, err := time.Parse(time.RFC3339, form.EndTime)
		if err != nil {
			return nil, &res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusBadRequest,
			}
		}
		endTime = parsed
	}
	_, err := attemptModel.Use().UpdateByID(db.Ctx, attempt.ID, bson.D{{
		Key: "$set",
		Value: bson.M{
			"answers":        answers,
			"section_scores": sectionScores,
			"total_score":    totalScore,
			"end_time":       primitive.NewDateTimeFromTime(endTime),
			"completed":      true,
		},
	}})
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	nats.PublishEncode("mock_tests/attempt_completed", map[string]interface{}{
		"attempt":     attempt.ID.Hex(),
		"mock_test":   test.ID.Hex(),
		"user":        claims.ID,
		"total_score": totalScore,
	})
	// "passed" is derived, never stored
	response := map[string]interface{}{
		"total_score":    totalScore,
		"section_scores": sectionScores,
		"passed":         totalScore >= test.PassScore,
	}
	if len(warnings) > 0 {
		response["warnings"] = warnings
	}
	return response, nil
}

func (a *AttemptsService) GetAttempts(claims *Claims) ([]models.MockTestAttempt, *res.ErrorRes) {
	idObjUser, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	opts := options.Find().SetSort(bson.D{{
		Key:   "start_time",
		Value: -1,
	}})
	cursor, err := attemptModel.GetAll(bson.D{{
		Key:   "user",
		Value: idObjUser,
	}}, opts)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var attempts []models.MockTestAttempt
	if err := cursor.All(db.Ctx, &attempts); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return attempts, nil
}

func (a *AttemptsService) GetAttempt(idAttempt string, claims *Claims) (*models.MockTestAttempt, *res.ErrorRes) {
	attempt, errRes := a.getAttemptFromId(idAttempt)
	if errRes != nil {
		return nil, errRes
	}
	isOwner := attempt.User.Hex() == claims.ID
	isStaff := claims.UserType == models.ADMIN || claims.UserType == models.INSTRUCTOR
	if !isOwner && !isStaff {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("This attempt belongs to another user"),
			StatusCode: http.StatusForbidden,
		}
	}
	return attempt, nil
}

// GradeAttempt patches scores on answers still waiting for manual review
// and recomputes the totals from a fresh question index
func (a *AttemptsService) GradeAttempt(
	form *forms.GradeAttemptForm,
	idAttempt string,
	claims *Claims,
) (map[string]interface{}, *res.ErrorRes) {
	attempt, errRes := a.getAttemptFromId(idAttempt)
	if errRes != nil {
		return nil, errRes
	}
	if !attempt.Completed {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("Attempt is not completed yet"),
			StatusCode: http.StatusBadRequest,
		}
	}
	test, errRes := NewMockTestsService().getMockTestFromId(attempt.MockTest.Hex())
	if errRes != nil {
		return nil, errRes
	}
	sections := scoringSections(test)
	index := scoring.BuildIndex(sections)
	var warnings []string
	for _, questionScore := range form.QuestionScores {
		answerIndex := funct.Index(attempt.Answers, func(answer models.AttemptAnswer) bool {
			return answer.Question.Hex() == questionScore.Question && answer.IsCorrect == nil
		})
		if answerIndex == -1 {
			warnings = append(
				warnings,
				fmt.Sprintf("Question %s has no answer pending review; skipped", questionScore.Question),
			)
			continue
		}
		ref, ok := index[questionScore.Question]
		if !ok {
			warnings = append(
				warnings,
				fmt.Sprintf("Question %s not found in mock test; skipped", questionScore.Question),
			)
			continue
		}
		if *questionScore.Score > float64(ref.Question.Points) {
			return nil, &res.ErrorRes{
				Err:        fmt.Errorf("Score exceeds question points"),
				StatusCode: http.StatusBadRequest,
			}
		}
		correct := *questionScore.Score > 0
		attempt.Answers[answerIndex].Score = *questionScore.Score
		attempt.Answers[answerIndex].IsCorrect = &correct
	}
	// Re-derive totals from the patched answers
	result := scoring.Recompute(sections, scoringAnswers(attempt.Answers))
	sectionScores := sectionScoresFromScoring(result.SectionScores)
	totalScore := result.TotalScore
	update := bson.M{
		"answers":        attempt.Answers,
		"section_scores": sectionScores,
		"total_score":    totalScore,
	}
	if form.Feedback != "" {
		update["feedback"] = form.Feedback
	}
	_, err := attemptModel.Use().UpdateByID(db.Ctx, attempt.ID, bson.D{{
		Key:   "$set",
		Value: update,
	}})
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	response := map[string]interface{}{
		"total_score":    totalScore,
		"section_scores": sectionScores,
		"passed":         totalScore >= test.PassScore,
	}
	if len(warnings) > 0 {
		response["warnings"] = warnings
	}
	return response, nil
}


// Conversions between the storage structs and the scoring package

func scoringSections(test *models.MockTest) []scoring.Section {
	var sections []scoring.Section
	for _, section := range test.Sections {
		scoringSection := scoring.Section{
			ID: section.ID,
		}
		for _, question := range section.Questions {
			scoringSection.Questions = append(scoringSection.Questions, scoring.Question{
				ID:             question.ID,
				Type:           question.Type,
				CorrectAnswer:  question.CorrectAnswer,
				CorrectAnswers: question.CorrectAnswers,
				Points:         question.Points,
			})
		}
		sections = append(sections, scoringSection)
	}
	return sections
}

func scoringAnswers(answers []models.AttemptAnswer) []scoring.ScoredAnswer {
	scored, _ := funct.Map(answers, func(answer models.AttemptAnswer) (scoring.ScoredAnswer, error) {
		return scoring.ScoredAnswer{
			Question:    answer.Question,
			Section:     answer.Section,
			UserAnswer:  answer.UserAnswer,
			UserAnswers: answer.UserAnswers,
			IsCorrect:   answer.IsCorrect,
			Score:       answer.Score,
		}, nil
	})
	return scored
}

func answersFromScoring(scored []scoring.ScoredAnswer) []models.AttemptAnswer {
	answers, _ := funct.Map(scored, func(answer scoring.ScoredAnswer) (models.AttemptAnswer, error) {
		return models.AttemptAnswer{
			Question:    answer.Question,
			Section:     answer.Section,
			UserAnswer:  answer.UserAnswer,
			UserAnswers: answer.UserAnswers,
			IsCorrect:   answer.IsCorrect,
			Score:       answer.Score,
		}, nil
	})
	return answers
}

func sectionScoresFromScoring(scores []scoring.SectionScore) []models.SectionScore {
	sectionScores, _ := funct.Map(scores, func(score scoring.SectionScore) (models.SectionScore, error) {
		return models.SectionScore{
			Section:  score.Section,
			Score:    score.Score,
			MaxScore: score.MaxScore,
		}, nil
	})
	return sectionScores
}

func NewAttemptsService() *AttemptsService {
	if attemptsService == nil {
		attemptsService = &AttemptsService{}
	}
	return attemptsService
}
