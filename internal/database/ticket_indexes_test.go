package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIndexExistsError(t *testing.T) {
	assert.False(t, isIndexExistsError(nil))
	assert.True(t, isIndexExistsError(errors.New("Index with name: ticket_performance_time already exists with different options")))
	assert.True(t, isIndexExistsError(errors.New("E11000 duplicate key error")))
	assert.False(t, isIndexExistsError(errors.New("connection refused")))
}
