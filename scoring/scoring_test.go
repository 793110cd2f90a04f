package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestScore(t *testing.T) {
	section := primitive.NewObjectID()

	tests := []struct {
		name          string
		question      Question
		answer        Answer
		wantCorrect   *bool
		wantScore     float64
		pendingReview bool
	}{
		{
			name: "multiple choice correct",
			question: Question{
				Type:          TypeMultipleChoice,
				CorrectAnswer: "B",
				Points:        10,
			},
			answer:      Answer{Answer: "B"},
			wantCorrect: boolPtr(true),
			wantScore:   10,
		},
		{
			name: "multiple choice wrong",
			question: Question{
				Type:          TypeMultipleChoice,
				CorrectAnswer: "B",
				Points:        10,
			},
			answer:      Answer{Answer: "C"},
			wantCorrect: boolPtr(false),
			wantScore:   0,
		},
		{
			name: "multiple choice empty answer is wrong",
			question: Question{
				Type:          TypeMultipleChoice,
				CorrectAnswer: "",
				Points:        10,
			},
			answer:      Answer{Answer: ""},
			wantCorrect: boolPtr(false),
			wantScore:   0,
		},
		{
			name: "true false correct",
			question: Question{
				Type:          TypeTrueFalse,
				CorrectAnswer: "true",
				Points:        5,
			},
			answer:      Answer{Answer: "true"},
			wantCorrect: boolPtr(true),
			wantScore:   5,
		},
		{
			name: "matching exact order",
			question: Question{
				Type:           TypeMatching,
				CorrectAnswers: []string{"a", "b", "c"},
				Points:         15,
			},
			answer:      Answer{Answers: []string{"a", "b", "c"}},
			wantCorrect: boolPtr(true),
			wantScore:   15,
		},
		{
			name: "matching wrong order",
			question: Question{
				Type:           TypeMatching,
				CorrectAnswers: []string{"a", "b", "c"},
				Points:         15,
			},
			answer:      Answer{Answers: []string{"b", "a", "c"}},
			wantCorrect: boolPtr(false),
			wantScore:   0,
		},
		{
			name: "fill in the blank length mismatch",
			question: Question{
				Type:           TypeFillBlank,
				CorrectAnswers: []string{"sun", "moon"},
				Points:         8,
			},
			answer:      Answer{Answers: []string{"sun"}},
			wantCorrect: boolPtr(false),
			wantScore:   0,
		},
		{
			name: "fill in the blank correct",
			question: Question{
				Type:           TypeFillBlank,
				CorrectAnswers: []string{"sun", "moon"},
				Points:         8,
			},
			answer:      Answer{Answers: []string{"sun", "moon"}},
			wantCorrect: boolPtr(true),
			wantScore:   8,
		},
		{
			name: "short answer waits for manual review",
			question: Question{
				Type:   TypeShortAnswer,
				Points: 20,
			},
			answer:        Answer{Answer: "some essay"},
			pendingReview: true,
			wantScore:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.question.ID = primitive.NewObjectID()
			scored := Score(Ref{Section: section, Question: tt.question}, tt.answer)

			assert.Equal(t, tt.question.ID, scored.Question)
			assert.Equal(t, section, scored.Section)
			assert.Equal(t, tt.wantScore, scored.Score)
			if tt.pendingReview {
				assert.Nil(t, scored.IsCorrect)
			} else {
				require.NotNil(t, scored.IsCorrect)
				assert.Equal(t, *tt.wantCorrect, *scored.IsCorrect)
			}
		})
	}
}

// A test with passScore 70 and two 50-point questions: one right answer
// fails, two right answers pass
func TestGradePassScore(t *testing.T) {
	questionA := Question{
		ID:            primitive.NewObjectID(),
		Type:          TypeMultipleChoice,
		CorrectAnswer: "A",
		Points:        50,
	}
	questionB := Question{
		ID:            primitive.NewObjectID(),
		Type:          TypeTrueFalse,
		CorrectAnswer: "false",
		Points:        50,
	}
	sections := []Section{{
		ID:        primitive.NewObjectID(),
		Questions: []Question{questionA, questionB},
	}}
	passScore := float64(70)

	oneRight := Grade(sections, []Answer{
		{Question: questionA.ID.Hex(), Answer: "A"},
		{Question: questionB.ID.Hex(), Answer: "true"},
	})
	assert.Equal(t, float64(50), oneRight.TotalScore)
	assert.False(t, oneRight.TotalScore >= passScore)

	bothRight := Grade(sections, []Answer{
		{Question: questionA.ID.Hex(), Answer: "A"},
		{Question: questionB.ID.Hex(), Answer: "false"},
	})
	assert.Equal(t, float64(100), bothRight.TotalScore)
	assert.True(t, bothRight.TotalScore >= passScore)
}

func TestGradeWarnsOnUnknownQuestions(t *testing.T) {
	question := Question{
		ID:            primitive.NewObjectID(),
		Type:          TypeMultipleChoice,
		CorrectAnswer: "A",
		Points:        10,
	}
	sections := []Section{{
		ID:        primitive.NewObjectID(),
		Questions: []Question{question},
	}}
	ghost := primitive.NewObjectID().Hex()

	result := Grade(sections, []Answer{
		{Question: question.ID.Hex(), Answer: "A"},
		{Question: ghost, Answer: "B"},
	})

	require.Len(t, result.Answers, 1)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], ghost)
	assert.Equal(t, float64(10), result.TotalScore)
}

func TestGradeSectionScores(t *testing.T) {
	sectionOne := Section{
		ID: primitive.NewObjectID(),
		Questions: []Question{
			{
				ID:            primitive.NewObjectID(),
				Type:          TypeMultipleChoice,
				CorrectAnswer: "A",
				Points:        10,
			},
			{
				ID:     primitive.NewObjectID(),
				Type:   TypeShortAnswer,
				Points: 20,
			},
		},
	}
	sectionTwo := Section{
		ID: primitive.NewObjectID(),
		Questions: []Question{
			{
				ID:             primitive.NewObjectID(),
				Type:           TypeMatching,
				CorrectAnswers: []string{"x", "y"},
				Points:         30,
			},
		},
	}
	sections := []Section{sectionOne, sectionTwo}

	result := Grade(sections, []Answer{
		{Question: sectionOne.Questions[0].ID.Hex(), Answer: "A"},
		{Question: sectionOne.Questions[1].ID.Hex(), Answer: "essay"},
		{Question: sectionTwo.Questions[0].ID.Hex(), Answers: []string{"x", "y"}},
	})

	require.Len(t, result.SectionScores, 2)
	// MaxScore counts every question, answered or not
	assert.Equal(t, sectionOne.ID, result.SectionScores[0].Section)
	assert.Equal(t, float64(10), result.SectionScores[0].Score)
	assert.Equal(t, float64(30), result.SectionScores[0].MaxScore)
	assert.Equal(t, float64(30), result.SectionScores[1].Score)
	assert.Equal(t, float64(30), result.SectionScores[1].MaxScore)
	assert.Equal(t, float64(40), result.TotalScore)
}

// Manual grading patches pending answers and shifts the totals by the delta
func TestRecomputeAfterManualGrading(t *testing.T) {
	autoQuestion := Question{
		ID:            primitive.NewObjectID(),
		Type:          TypeMultipleChoice,
		CorrectAnswer: "A",
		Points:        40,
	}
	manualQuestion := Question{
		ID:     primitive.NewObjectID(),
		Type:   TypeShortAnswer,
		Points: 60,
	}
	sections := []Section{{
		ID:        primitive.NewObjectID(),
		Questions: []Question{autoQuestion, manualQuestion},
	}}

	graded := Grade(sections, []Answer{
		{Question: autoQuestion.ID.Hex(), Answer: "A"},
		{Question: manualQuestion.ID.Hex(), Answer: "an essay"},
	})
	assert.Equal(t, float64(40), graded.TotalScore)

	// Reviewer awards 45 of 60
	for i := range graded.Answers {
		if graded.Answers[i].Question == manualQuestion.ID {
			correct := true
			graded.Answers[i].Score = 45
			graded.Answers[i].IsCorrect = &correct
		}
	}
	recomputed := Recompute(sections, graded.Answers)

	assert.Equal(t, float64(85), recomputed.TotalScore)
	require.Len(t, recomputed.SectionScores, 1)
	assert.Equal(t, float64(85), recomputed.SectionScores[0].Score)
	assert.Equal(t, float64(100), recomputed.SectionScores[0].MaxScore)
}

func TestValidatePublishable(t *testing.T) {
	question := Question{
		ID:            primitive.NewObjectID(),
		Type:          TypeMultipleChoice,
		CorrectAnswer: "A",
		Points:        10,
	}

	tests := []struct {
		name     string
		sections []Section
		wantErr  error
	}{
		{
			name:     "no sections",
			sections: nil,
			wantErr:  ErrNoSections,
		},
		{
			name: "section without questions",
			sections: []Section{
				{ID: primitive.NewObjectID(), Questions: []Question{question}},
				{ID: primitive.NewObjectID()},
			},
			wantErr: ErrEmptySection,
		},
		{
			name: "every section has questions",
			sections: []Section{
				{ID: primitive.NewObjectID(), Questions: []Question{question}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePublishable(tt.sections)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildIndex(t *testing.T) {
	question := Question{
		ID:            primitive.NewObjectID(),
		Type:          TypeMultipleChoice,
		CorrectAnswer: "A",
		Points:        10,
	}
	section := Section{
		ID:        primitive.NewObjectID(),
		Questions: []Question{question},
	}

	index := BuildIndex([]Section{section})

	ref, ok := index[question.ID.Hex()]
	require.True(t, ok)
	assert.Equal(t, section.ID, ref.Section)
	assert.Equal(t, question.Points, ref.Question.Points)

	_, ok = index[primitive.NewObjectID().Hex()]
	assert.False(t, ok)
}

func boolPtr(b bool) *bool {
	return &b
}
