package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAndCodeOf(t *testing.T) {
	err := NotFound("application")

	assert.True(t, Is(err, CodeNotFound))
	assert.False(t, Is(err, CodeValidation))
	assert.Equal(t, CodeNotFound, CodeOf(err))

	plain := errors.New("boom")
	assert.False(t, Is(plain, CodeNotFound))
	assert.Equal(t, CodeInternal, CodeOf(plain))
}

func TestIsThroughWrapping(t *testing.T) {
	inner := Conflict("document version conflict")
	wrapped := fmt.Errorf("finalize upload: %w", inner)

	assert.True(t, Is(wrapped, CodeConflict))
	assert.Equal(t, CodeConflict, CodeOf(wrapped))
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWithDetail(t *testing.T) {
	err := ValidationField("email", "invalid email address")

	require.NotNil(t, err.Details)
	assert.Equal(t, "email", err.Details["field"])

	err.WithDetail("hint", "use a corporate address")
	assert.Equal(t, "use a corporate address", err.Details["hint"])
}

func TestInvalidTransitionMessage(t *testing.T) {
	err := InvalidTransition("Evaluando", "EntrevistaConRH")

	assert.Equal(t, CodeInvalidTransition, err.Code)
	assert.Contains(t, err.Message, "Evaluando")
	assert.Equal(t, "Evaluando", err.Details["from"])
	assert.Equal(t, "EntrevistaConRH", err.Details["to"])
}

func TestMissingRequiredAnswers(t *testing.T) {
	err := MissingRequiredAnswers([]string{"q1", "q2"})

	assert.Equal(t, CodeMissingRequiredAnswers, err.Code)
	assert.Equal(t, []string{"q1", "q2"}, err.Details["question_ids"])
}
