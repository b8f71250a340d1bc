package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

func TestConvertSurrealID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{
			name: "plain string passes through",
			in:   "school:dps",
			want: "school:dps",
		},
		{
			name: "record id struct",
			in:   models.RecordID{Table: "student", ID: "ravi"},
			want: "student:ravi",
		},
		{
			name: "record id pointer",
			in:   &models.RecordID{Table: "class", ID: "10a"},
			want: "class:10a",
		},
		{
			name: "map form with nested id",
			in: map[string]interface{}{
				"tb": "school",
				"id": map[string]interface{}{"String": "dps"},
			},
			want: "school:dps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, convertSurrealID(tt.in))
		})
	}
}

func TestUnwrapRow(t *testing.T) {
	t.Parallel()

	t.Run("status wrapper with one record", func(t *testing.T) {
		t.Parallel()
		result := map[string]interface{}{
			"status": "OK",
			"result": []interface{}{
				map[string]interface{}{"name": "Delhi Public School"},
			},
		}

		row, ok := unwrapRow(result)
		require.True(t, ok)
		assert.Equal(t, "Delhi Public School", row["name"])
	})

	t.Run("status wrapper with empty result", func(t *testing.T) {
		t.Parallel()
		result := map[string]interface{}{
			"status": "OK",
			"result": []interface{}{},
		}

		_, ok := unwrapRow(result)
		assert.False(t, ok)
	})

	t.Run("bare slice takes first element", func(t *testing.T) {
		t.Parallel()
		result := []interface{}{
			map[string]interface{}{"name": "first"},
			map[string]interface{}{"name": "second"},
		}

		row, ok := unwrapRow(result)
		require.True(t, ok)
		assert.Equal(t, "first", row["name"])
	})

	t.Run("nil result", func(t *testing.T) {
		t.Parallel()
		_, ok := unwrapRow(nil)
		assert.False(t, ok)
	})
}

func TestUnwrapRows(t *testing.T) {
	t.Parallel()

	t.Run("wrapped result list", func(t *testing.T) {
		t.Parallel()
		result := []interface{}{
			map[string]interface{}{
				"status": "OK",
				"result": []interface{}{
					map[string]interface{}{"name": "a"},
					map[string]interface{}{"name": "b"},
				},
			},
		}

		rows := unwrapRows(result)
		require.Len(t, rows, 2)
		assert.Equal(t, "a", rows[0]["name"])
		assert.Equal(t, "b", rows[1]["name"])
	})

	t.Run("nil yields nothing", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, unwrapRows(nil))
	})
}

func TestGetTime(t *testing.T) {
	t.Parallel()

	want := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

	t.Run("rfc3339 string", func(t *testing.T) {
		t.Parallel()
		m := map[string]interface{}{"created_on": "2026-03-15T09:30:00Z"}
		got := getTime(m, "created_on")
		require.NotNil(t, got)
		assert.True(t, got.Equal(want))
	})

	t.Run("custom datetime", func(t *testing.T) {
		t.Parallel()
		m := map[string]interface{}{"created_on": models.CustomDateTime{Time: want}}
		got := getTime(m, "created_on")
		require.NotNil(t, got)
		assert.True(t, got.Equal(want))
	})

	t.Run("absent key", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, getTime(map[string]interface{}{}, "created_on"))
	})
}

func TestIsUniqueConstraintError(t *testing.T) {
	t.Parallel()

	assert.False(t, isUniqueConstraintError(nil))
	assert.True(t, isUniqueConstraintError(errFromString("index violation: value already exists")))
	assert.False(t, isUniqueConstraintError(errFromString("connection refused")))
}

type errFromString string

func (e errFromString) Error() string { return string(e) }
