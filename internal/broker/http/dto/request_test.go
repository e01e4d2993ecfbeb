package dto

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchTokensRequest_Validate(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		req := &BatchTokensRequest{
			UserID:    "alice@example.com",
			Resources: []string{"orders", "invoices"},
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("Error_MissingUserID", func(t *testing.T) {
		req := &BatchTokensRequest{
			Resources: []string{"orders"},
		}
		assert.Error(t, req.Validate())
	})

	t.Run("Error_BlankUserID", func(t *testing.T) {
		req := &BatchTokensRequest{
			UserID:    "   ",
			Resources: []string{"orders"},
		}
		assert.Error(t, req.Validate())
	})

	t.Run("Error_UserIDWithInvalidCharacters", func(t *testing.T) {
		req := &BatchTokensRequest{
			UserID:    "alice smith",
			Resources: []string{"orders"},
		}
		assert.Error(t, req.Validate())
	})

	t.Run("Error_EmptyResources", func(t *testing.T) {
		req := &BatchTokensRequest{
			UserID:    "alice",
			Resources: []string{},
		}
		assert.Error(t, req.Validate())
	})

	t.Run("Error_ResourceWithInvalidCharacters", func(t *testing.T) {
		req := &BatchTokensRequest{
			UserID:    "alice",
			Resources: []string{"orders/all"},
		}
		assert.Error(t, req.Validate())
	})

	t.Run("Error_DuplicateResources", func(t *testing.T) {
		req := &BatchTokensRequest{
			UserID:    "alice",
			Resources: []string{"orders", "orders"},
		}
		assert.Error(t, req.Validate())
	})

	t.Run("Error_TooManyResources", func(t *testing.T) {
		resources := make([]string, maxBatchResources+1)
		for i := range resources {
			resources[i] = fmt.Sprintf("resource-%d", i)
		}
		req := &BatchTokensRequest{
			UserID:    "alice",
			Resources: resources,
		}
		assert.Error(t, req.Validate())
	})
}
