package errx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	base := errors.New("connection refused")
	appErr := Retrieval(base)

	assert.Equal(t, "knowledge retrieval unavailable: connection refused", appErr.Error())
	assert.Equal(t, "some reason", Malformed("some reason").Error())
}

func TestFatality(t *testing.T) {
	assert.False(t, Classification(errors.New("x")).Fatal)
	assert.False(t, Retrieval(errors.New("x")).Fatal)
	assert.False(t, Tool("create_support_ticket", errors.New("x")).Fatal)
	assert.True(t, Generation(errors.New("x")).Fatal)
	assert.True(t, Malformed("empty message").Fatal)
}

func TestUnwrapAndIs(t *testing.T) {
	base := errors.New("boom")
	appErr := Generation(base)

	assert.True(t, errors.Is(appErr, base))

	var target *AppError
	require.True(t, errors.As(appErr, &target))
	assert.Equal(t, KindGeneration, target.Kind)
}
