package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	var ve ValidationError
	assert.NoError(t, ve.Err())
	assert.Equal(t, "validation failed", ve.Error())

	ve.Add("title", "must not be empty")
	var inner ValidationError
	inner.Add("date", "bad date")
	inner.Add("", "unknown key")
	ve.Merge("events[1]", inner)

	err := ve.Err()
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Equal(t, "validation failed:\n - title: must not be empty\n - events[1].date: bad date\n - events[1]: unknown key\n", err.Error())
}
