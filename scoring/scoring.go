// Package scoring grades mock test answers. It is pure: no storage, no
// transport, only the marking rules
package scoring

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNoSections   = errors.New("no sections")
	ErrEmptySection = errors.New("section with no questions")
)

// Question types
const (
	TypeMultipleChoice = "multipleChoice"
	TypeTrueFalse      = "trueFalse"
	TypeMatching       = "matching"
	TypeFillBlank      = "fillInTheBlank"
	TypeShortAnswer    = "shortAnswer"
)

type Question struct {
	ID             primitive.ObjectID
	Type           string
	CorrectAnswer  string
	CorrectAnswers []string
	Points         int
}

type Section struct {
	ID        primitive.ObjectID
	Questions []Question
}

// Answer is a raw submission. Question is the hex id as sent by the client;
// ids that match nothing produce a warning, not an error
type Answer struct {
	Question string
	Answer   string
	Answers  []string
}

// ScoredAnswer keeps IsCorrect nil while the answer waits for manual review
type ScoredAnswer struct {
	Question    primitive.ObjectID
	Section     primitive.ObjectID
	UserAnswer  string
	UserAnswers []string
	IsCorrect   *bool
	Score       float64
}

type SectionScore struct {
	Section  primitive.ObjectID
	Score    float64
	MaxScore float64
}

type Result struct {
	Answers       []ScoredAnswer
	SectionScores []SectionScore
	TotalScore    float64
	Warnings      []string
}

type Ref struct {
	Section  primitive.ObjectID
	Question Question
}

// ValidatePublishable checks the publish guard: at least one section, and at
// least one question in every section
func ValidatePublishable(sections []Section) error {
	if len(sections) == 0 {
		return ErrNoSections
	}
	for _, section := range sections {
		if len(section.Questions) == 0 {
			return ErrEmptySection
		}
	}
	return nil
}

// BuildIndex maps question hex id -> question + owning section
func BuildIndex(sections []Section) map[string]Ref {
	index := make(map[string]Ref)
	for _, section := range sections {
		for _, question := range section.Questions {
			index[question.ID.Hex()] = Ref{
				Section:  section.ID,
				Question: question,
			}
		}
	}
	return index
}

func equalAnswers(expected, given []string) bool {
	if len(expected) != len(given) {
		return false
	}
	for i := range expected {
		if expected[i] != given[i] {
			return false
		}
	}
	return true
}

// Score grades a single answer against its question
func Score(ref Ref, answer Answer) ScoredAnswer {
	scored := ScoredAnswer{
		Question:    ref.Question.ID,
		Section:     ref.Section,
		UserAnswer:  answer.Answer,
		UserAnswers: answer.Answers,
	}
	switch ref.Question.Type {
	case TypeMultipleChoice, TypeTrueFalse:
		correct := answer.Answer != "" && answer.Answer == ref.Question.CorrectAnswer
		scored.IsCorrect = &correct
		if correct {
			scored.Score = float64(ref.Question.Points)
		}
	case TypeMatching, TypeFillBlank:
		correct := len(answer.Answers) > 0 &&
			equalAnswers(ref.Question.CorrectAnswers, answer.Answers)
		scored.IsCorrect = &correct
		if correct {
			scored.Score = float64(ref.Question.Points)
		}
	case TypeShortAnswer:
		// Manual review
	}
	return scored
}

// Grade marks a whole submission. Unknown question ids are skipped and
// reported in Warnings
func Grade(sections []Section, answers []Answer) Result {
	index := BuildIndex(sections)
	var result Result
	for _, answer := range answers {
		ref, ok := index[answer.Question]
		if !ok {
			result.Warnings = append(
				result.Warnings,
				fmt.Sprintf("Question %s not found in mock test; answer skipped", answer.Question),
			)
			continue
		}
		result.Answers = append(result.Answers, Score(ref, answer))
	}
	result.SectionScores, result.TotalScore = totals(sections, result.Answers)
	return result
}

// Recompute re-derives section and total scores after answers were patched
// by manual grading
func Recompute(sections []Section, answers []ScoredAnswer) Result {
	result := Result{Answers: answers}
	result.SectionScores, result.TotalScore = totals(sections, answers)
	return result
}

// totals sums scores per section; MaxScore covers every question in the
// section, answered or not
func totals(sections []Section, answers []ScoredAnswer) ([]SectionScore, float64) {
	scoreBySection := make(map[string]float64)
	total := float64(0)
	for _, answer := range answers {
		scoreBySection[answer.Section.Hex()] += answer.Score
		total += answer.Score
	}
	var sectionScores []SectionScore
	for _, section := range sections {
		maxScore := float64(0)
		for _, question := range section.Questions {
			maxScore += float64(question.Points)
		}
		sectionScores = append(sectionScores, SectionScore{
			Section:  section.ID,
			Score:    scoreBySection[section.ID.Hex()],
			MaxScore: maxScore,
		})
	}
	return sectionScores, total
}
