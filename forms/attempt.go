package forms

// One of Answer/Answers is set depending on the question type
type AttemptAnswerForm struct {
	Question string   `json:"question" binding:"required"`
	Answer   string   `json:"answer" validate:"optional"`
	Answers  []string `json:"answers" validate:"optional"`
}

type SubmitAnswersForm struct {
	Answers []AttemptAnswerForm `json:"answers" binding:"required,min=1,dive"`
	EndTime string              `json:"end_time" binding:"omitempty"`
}

type QuestionScoreForm struct {
	Question string   `json:"question" binding:"required"`
	Score    *float64 `json:"score" binding:"required,min=0"`
}

type GradeAttemptForm struct {
	QuestionScores []QuestionScoreForm `json:"question_scores" binding:"required,min=1,dive"`
	Feedback       string              `json:"feedback" binding:"omitempty,max=1000"`
}
