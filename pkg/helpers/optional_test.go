package helpers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional(t *testing.T) {
	type payload struct {
		Capacity Optional[int] `json:"capacity"`
	}

	t.Run("absent field", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		assert.False(t, p.Capacity.Set)
		assert.False(t, p.Capacity.Valid)
	})

	t.Run("explicit null", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"capacity":null}`), &p))
		assert.True(t, p.Capacity.Set)
		assert.False(t, p.Capacity.Valid)
	})

	t.Run("value", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"capacity":42}`), &p))
		assert.True(t, p.Capacity.Set)
		assert.True(t, p.Capacity.Valid)
		assert.Equal(t, 42, p.Capacity.Value)
	})

	t.Run("wrong type errors", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"capacity":"many"}`), &p))
	})

	t.Run("marshals null when not valid", func(t *testing.T) {
		b, err := json.Marshal(Optional[int]{Set: true})
		require.NoError(t, err)
		assert.Equal(t, "null", string(b))

		b, err = json.Marshal(Optional[int]{Set: true, Valid: true, Value: 7})
		require.NoError(t, err)
		assert.Equal(t, "7", string(b))
	})
}
