package forms

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	require.NoError(t, v.RegisterValidation("questionType", QuestionType))
	require.NoError(t, v.RegisterValidation("availableFor", AvailableFor))
	require.NoError(t, v.RegisterValidation("courseStatus", CourseStatus))
	require.NoError(t, v.RegisterValidation("timeUnit", TimeUnit))
	return v
}

func TestQuestionTypeValidator(t *testing.T) {
	v := newValidator(t)

	for _, valid := range []string{
		"multipleChoice",
		"trueFalse",
		"matching",
		"fillInTheBlank",
		"shortAnswer",
	} {
		assert.NoError(t, v.Var(valid, "questionType"), valid)
	}
	for _, invalid := range []string{"essay", "MultipleChoice", ""} {
		assert.Error(t, v.Var(invalid, "questionType"), invalid)
	}
}

func TestAvailableForValidator(t *testing.T) {
	v := newValidator(t)

	for _, valid := range []string{"All", "Premium", "Specific"} {
		assert.NoError(t, v.Var(valid, "availableFor"), valid)
	}
	for _, invalid := range []string{"all", "premium", "Everyone", ""} {
		assert.Error(t, v.Var(invalid, "availableFor"), invalid)
	}
}

func TestCourseStatusValidator(t *testing.T) {
	v := newValidator(t)

	for _, valid := range []string{
		"draft",
		"inProgress",
		"published",
		"archived",
		"underReview",
	} {
		assert.NoError(t, v.Var(valid, "courseStatus"), valid)
	}
	for _, invalid := range []string{"Published", "deleted", ""} {
		assert.Error(t, v.Var(invalid, "courseStatus"), invalid)
	}
}

func TestTimeUnitValidator(t *testing.T) {
	v := newValidator(t)

	for _, valid := range []string{"minutes", "hours", "days"} {
		assert.NoError(t, v.Var(valid, "timeUnit"), valid)
	}
	for _, invalid := range []string{"weeks", "Hours", ""} {
		assert.Error(t, v.Var(invalid, "timeUnit"), invalid)
	}
}
