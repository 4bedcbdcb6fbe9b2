package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
)

func TestDamageBatchReduceStockFlag(t *testing.T) {
	t.Run("omitted", func(t *testing.T) {
		var req DamageBatchRequest
		body := `{"items":[{"id":"p1","quantity":10}]}`
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		// Omitted must stay nil so the posting default (reduce) applies.
		assert.Nil(t, req.ReduceStock)
	})

	t.Run("explicit false", func(t *testing.T) {
		var req DamageBatchRequest
		body := `{"items":[{"id":"p1","quantity":10}],"reduceStock":false}`
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		require.NotNil(t, req.ReduceStock)
		assert.False(t, *req.ReduceStock)
	})

	t.Run("explicit true", func(t *testing.T) {
		var req DamageBatchRequest
		body := `{"items":[{"id":"p1","quantity":10}],"reduceStock":true}`
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		require.NotNil(t, req.ReduceStock)
		assert.True(t, *req.ReduceStock)
	})
}

func TestParsePostedAt(t *testing.T) {
	t.Run("rfc3339", func(t *testing.T) {
		got, err := ParsePostedAt("2024-05-10T14:30:00Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC), got)
	})

	t.Run("date only", func(t *testing.T) {
		got, err := ParsePostedAt("2024-05-10")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("empty means now", func(t *testing.T) {
		got, err := ParsePostedAt("")
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := ParsePostedAt("last tuesday")
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})
}
