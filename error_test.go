package lingua_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/lingua"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := lingua.Errorf(lingua.ENOTFOUND, "word %q not found", "test")

	assert.Equal(t, lingua.ENOTFOUND, lingua.ErrorCode(err))
	assert.Equal(t, "word \"test\" not found", lingua.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, lingua.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, lingua.ErrorMessage(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, lingua.EINTERNAL, lingua.ErrorCode(err))
	assert.Equal(t, "Internal error.", lingua.ErrorMessage(err))
}

func TestRunError(t *testing.T) {
	t.Parallel()

	t.Run("unwraps to cause and keeps its code", func(t *testing.T) {
		t.Parallel()

		cause := lingua.Errorf(lingua.ENAVIGATION, "no region")
		err := fmt.Errorf("wrapped: %w", &lingua.RunError{Key: "അ", Phase: lingua.PhaseNavigate, Err: cause})

		assert.Equal(t, lingua.PhaseNavigate, lingua.ErrorPhase(err))
		assert.Equal(t, lingua.ENAVIGATION, lingua.ErrorCode(err))
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "run അ: navigate")
	})

	t.Run("phase is empty for other errors", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, lingua.ErrorPhase(errors.New("boom")))
	})
}
