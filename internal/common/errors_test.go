package common

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("create budget: %w", Invalid("name", "is required"))

	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "create budget: name: is required")

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)
}

func TestJoinedValidationErrors(t *testing.T) {
	err := errors.Join(Invalid("name", "is required"), Invalid("amount", "must be positive"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNotFoundErrorSuggestion(t *testing.T) {
	err := &NotFoundError{Kind: "budget", Ref: "markting", Suggestion: "Marketing"}
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, `budget "markting" not found (did you mean "Marketing"?)`, err.Error())

	bare := &NotFoundError{Kind: "budget", Ref: "x"}
	assert.Equal(t, `budget "x" not found`, bare.Error())
}

func TestUserMessage(t *testing.T) {
	inner := errors.New("disk full")
	err := fmt.Errorf("export: %w", NewUserError("Could not write report", inner))

	assert.Equal(t, "Could not write report", UserMessage(err))
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "debug", "json")
	require.NoError(t, err)

	logger.Debug("store opened", "path", "/tmp/x.db")
	assert.Contains(t, buf.String(), `"msg":"store opened"`)
	assert.Contains(t, buf.String(), `"path":"/tmp/x.db"`)

	_, err = NewLogger(&buf, "loud", "json")
	assert.Error(t, err)
	_, err = NewLogger(&buf, "info", "xml")
	assert.Error(t, err)
}
