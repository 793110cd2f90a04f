package forms

type LiveLessonForm struct {
	Title      string `json:"title" binding:"required,min=1,max=100"`
	StartTime  string `json:"start_time" binding:"required"`
	Duration   int    `json:"duration" binding:"required,min=1"` // Minutes
	MeetingUrl string `json:"meeting_url" binding:"omitempty,url"`
}
