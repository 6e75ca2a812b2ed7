package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEWrapsSentinel(t *testing.T) {
	err := E(ErrConflict, "insufficient stock for %q", "Maggi")
	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "insufficient stock", Message(E(ErrConflict, "insufficient stock")))
	assert.Equal(t, "listing not found", Message(E(ErrNotFound, "listing not found")))
	assert.Equal(t, "conflict", Message(ErrConflict))
	assert.Equal(t, "plain failure", Message(fmt.Errorf("plain failure")))
}
