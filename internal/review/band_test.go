package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		value int
		want  Band
	}{
		{-1, BandUnclassified},
		{0, BandUnclassified},
		{1, BandLow},
		{2, BandLow},
		{3, BandLow},
		{4, BandMid},
		{5, BandMid},
		{6, BandMid},
		{7, BandMid},
		{8, BandHigh},
		{9, BandHigh},
		{10, BandHigh},
		{11, BandUnclassified},
		{30, BandUnclassified},
		{55, BandUnclassified},
		{100, BandUnclassified},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.value), "Classify(%d)", tt.value)
	}
}

func TestClassify_PartitionsOneToTen(t *testing.T) {
	seen := map[Band]int{}
	for v := 1; v <= 10; v++ {
		b := Classify(v)
		assert.NotEqual(t, BandUnclassified, b, "Classify(%d)", v)
		seen[b]++
	}
	assert.Equal(t, map[Band]int{BandLow: 3, BandMid: 4, BandHigh: 3}, seen)
}
