package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrorsAddAndMerge(t *testing.T) {
	errs := FieldErrors{}
	assert.False(t, errs.HasErrors())

	errs.Add("title", "Title is required")
	errs.Add("title", "Title contains prohibited words")
	errs.Merge(FieldErrors{"status": {"Status is not a valid choice"}})

	assert.True(t, errs.HasErrors())
	assert.Equal(t, []string{"Title is required", "Title contains prohibited words"}, errs["title"])
	assert.Equal(t, []string{"Status is not a valid choice"}, errs["status"])
}

func TestFieldErrorsErrorIsDeterministic(t *testing.T) {
	errs := FieldErrors{
		"visibility": {"Visibility is not a valid choice"},
		"title":      {"Title is required"},
	}

	want := "validation failed: title: Title is required, visibility: Visibility is not a valid choice"
	for i := 0; i < 10; i++ {
		assert.Equal(t, want, errs.Error())
	}
}

func TestAsFieldErrors(t *testing.T) {
	errs := FieldErrors{"title": {"Title is required"}}

	t.Run("direct", func(t *testing.T) {
		got, ok := AsFieldErrors(errs)
		require.True(t, ok)
		assert.Equal(t, errs, got)
	})

	t.Run("wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("saving task: %w", errs)
		got, ok := AsFieldErrors(wrapped)
		require.True(t, ok)
		assert.Equal(t, errs, got)
	})

	t.Run("unrelated error", func(t *testing.T) {
		_, ok := AsFieldErrors(fmt.Errorf("boom"))
		assert.False(t, ok)
	})
}
