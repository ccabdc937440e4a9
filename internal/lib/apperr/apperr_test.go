package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidf(t *testing.T) {
	err := fmt.Errorf("services.news.Create: %w", Invalidf("month %d out of range", 13))

	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "month 13 out of range")
	assert.False(t, errors.Is(err, ErrConflict))
}

func TestPreconditionf(t *testing.T) {
	err := Preconditionf("products table is empty")

	assert.ErrorIs(t, err, ErrPrecondition)
	assert.Equal(t, "precondition failed: products table is empty", err.Error())
}

func TestDetail(t *testing.T) {
	err := fmt.Errorf("services.news.Create: %w", Invalidf("year must be between %d and %d", 1998, 2050))

	detail, ok := Detail(err)
	assert.True(t, ok)
	assert.Equal(t, "year must be between 1998 and 2050", detail)

	_, ok = Detail(fmt.Errorf("op: %w", ErrNotFound))
	assert.False(t, ok)
}
