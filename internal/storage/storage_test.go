package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersistenceError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &PersistenceError{Op: "save", Err: cause}

	assert.Equal(t, "persistence failure during save: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsPersistenceError(err))
	assert.True(t, IsPersistenceError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsPersistenceError(cause))
	assert.False(t, IsPersistenceError(nil))
}
