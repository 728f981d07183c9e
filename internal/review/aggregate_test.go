package review

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   int
	}{
		{"all ones", []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, 10},
		{"all tens", []int{10, 10, 10, 10, 10, 10, 10, 10, 10, 10}, 100},
		{"alternating", []int{1, 10, 1, 10, 1, 10, 1, 10, 1, 10}, 55},
		{"ascending", []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 55},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Aggregate(scores(tt.values...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAggregate_SumProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		values := make([]int, 10)
		sum := 0
		for j := range values {
			values[j] = rng.Intn(10) + 1
			sum += values[j]
		}
		got, err := Aggregate(scores(values...))
		require.NoError(t, err)
		assert.Equal(t, sum, got)
		assert.GreaterOrEqual(t, got, 10)
		assert.LessOrEqual(t, got, 100)
	}
}

func TestAggregate_RejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name      string
		field     Field
		value     int
		wantField string
	}{
		{"zero quality", FieldQuality, 0, "quality"},
		{"negative price", FieldPrice, -3, "price"},
		{"eleven niche", FieldNicheFilling, 11, "nicheFilling"},
		{"hundred trend", FieldTrend, 100, "trend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scores(5, 5, 5, 5, 5, 5, 5, 5, 5, 5)
			s.Set(tt.field, tt.value)

			total, err := Aggregate(s)
			require.Error(t, err)
			assert.Zero(t, total)
			assert.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Equal(t, tt.value, verr.Value)
		})
	}
}

func TestAggregate_ReportsFirstFieldInOrder(t *testing.T) {
	s := scores(0, 5, 5, 5, 5, 5, 5, 5, 5, 0)
	_, err := Aggregate(s)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "quality", verr.Field)
}
