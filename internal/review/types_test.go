package review

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scores(values ...int) SubScores {
	s, err := SubScoresFromValues(values)
	if err != nil {
		panic(err)
	}
	return s
}

func TestColumns(t *testing.T) {
	want := []string{
		"Product Link", "Product name", "Date of item found", "Quality", "Price",
		"Reviews&Rating", "Functionality", "niche filling", "potential for improvement",
		"Environmental friendliness and safety", "Aesthetics", "Price-performance ratio",
		"Trend", "Total points",
	}
	assert.Equal(t, want, Columns())
}

func TestSubScores_GetSetValues(t *testing.T) {
	s := scores(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, s.Values())

	for i, f := range Fields {
		v, ok := s.Get(f)
		require.True(t, ok, "Get(%s)", f)
		assert.Equal(t, i+1, v, "Get(%s)", f)
	}

	assert.True(t, s.Set(FieldTrend, 3))
	assert.Equal(t, 3, s.Trend)

	assert.False(t, s.Set(Field("bogus"), 1))
	_, ok := s.Get(Field("bogus"))
	assert.False(t, ok)
}

func TestSubScoresFromValues_WrongLength(t *testing.T) {
	_, err := SubScoresFromValues([]int{1, 2, 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewRecord(t *testing.T) {
	rec, err := NewRecord("https://example.com/p/1", "Lamp", NewDate(2024, time.May, 1), scores(1, 10, 1, 10, 1, 10, 1, 10, 1, 10))
	require.NoError(t, err)
	assert.Equal(t, 55, rec.TotalPoints)
	assert.Equal(t, "Lamp", rec.Name)
	assert.Equal(t, "2024-05-01", rec.DateFound.String())
}

func TestNewRecord_RejectsOutOfRange(t *testing.T) {
	_, err := NewRecord("", "Bad", Today(), scores(1, 10, 1, 10, 1, 10, 1, 10, 1, 11))
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "trend", verr.Field)
	assert.Equal(t, 11, verr.Value)
}

func TestNewRecord_RejectsMissingDate(t *testing.T) {
	_, err := NewRecord("", "Lamp", Date{}, scores(5, 5, 5, 5, 5, 5, 5, 5, 5, 5))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "dateFound", verr.Field)

	rec, err := NewRecord("", "Lamp", Today(), scores(5, 5, 5, 5, 5, 5, 5, 5, 5, 5))
	require.NoError(t, err)
	rec.DateFound = Date{}
	assert.ErrorIs(t, rec.Validate(), ErrValidation)
}

func TestRecord_Validate(t *testing.T) {
	rec, err := NewRecord("", "Lamp", Today(), scores(5, 5, 5, 5, 5, 5, 5, 5, 5, 5))
	require.NoError(t, err)
	assert.NoError(t, rec.Validate())

	rec.TotalPoints = 49
	err = rec.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "totalPoints")
}

func TestRows(t *testing.T) {
	a, _ := NewRecord("", "A", Today(), scores(1, 4, 8, 3, 7, 10, 2, 5, 9, 6))
	b, _ := NewRecord("", "B", Today(), scores(10, 10, 10, 10, 10, 10, 10, 10, 10, 10))

	rows := Rows([]Record{a, b})
	require.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].Index)
	assert.Equal(t, 1, rows[1].Index)
	assert.Equal(t, 100, rows[1].Total)
	require.Len(t, rows[0].Cells, 10)

	wantBands := []Band{BandLow, BandMid, BandHigh, BandLow, BandMid, BandHigh, BandLow, BandMid, BandHigh, BandMid}
	for i, c := range rows[0].Cells {
		assert.Equal(t, Fields[i], c.Field)
		assert.Equal(t, wantBands[i], c.Band, "cell %s", c.Field)
	}

	c, ok := rows[0].Cell(FieldFunctionality)
	require.True(t, ok)
	assert.Equal(t, 3, c.Value)
}

func TestRow_RecordRoundTrip(t *testing.T) {
	rec, err := NewRecord("https://example.com/x", "X", NewDate(2024, 3, 1), scores(1, 4, 8, 3, 7, 10, 2, 5, 9, 6))
	require.NoError(t, err)
	assert.Equal(t, rec, NewRow(7, rec).Record())
}

func TestBuildReport_KeepsStorePositions(t *testing.T) {
	a, _ := NewRecord("", "A", Today(), scores(2, 2, 2, 2, 2, 2, 2, 2, 2, 2))
	b, _ := NewRecord("", "B", Today(), scores(5, 5, 5, 5, 5, 5, 5, 5, 5, 5))
	c, _ := NewRecord("", "C", Today(), scores(6, 6, 6, 6, 6, 6, 6, 6, 6, 6))

	report := BuildReport("data.csv", []Record{a, b, c}, Ranges{FieldQuality: {Min: 4, Max: 7}})

	assert.Equal(t, Tool, report.Tool)
	assert.Equal(t, "data.csv", report.Source)
	assert.Equal(t, []string{"quality=4:7"}, report.Filters)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, 1, report.Rows[0].Index)
	assert.Equal(t, 2, report.Rows[1].Index)
	assert.Equal(t, 2, report.Summary.Count)
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2023, time.December, 31)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2023-12-31"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back == d)

	assert.Error(t, json.Unmarshal([]byte(`"31/12/2023"`), &back))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.February, 29), d)

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)
}
