package pgerr_test

import (
	"errors"
	"fmt"
	"testing"

	"fulfillment/internal/adapters/out/postgres/pgerr"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, pgerr.IsUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	assert.False(t, pgerr.IsUniqueViolation(&pq.Error{Code: "23514"}))
	assert.False(t, pgerr.IsUniqueViolation(errors.New("23505")))
	assert.False(t, pgerr.IsUniqueViolation(nil))
}
