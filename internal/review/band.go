package review

// Band is the display classification of a single sub-score.
type Band string

const (
	BandUnclassified Band = "unclassified"
	BandLow          Band = "low"
	BandMid          Band = "mid"
	BandHigh         Band = "high"
)

// Bands lists the classified bands from lowest to highest.
var Bands = []Band{BandLow, BandMid, BandHigh}

// Classify maps a sub-score to its band. The three bands partition [1,10];
// every other value, totals included, is unclassified.
func Classify(v int) Band {
	switch {
	case v >= 1 && v <= 3:
		return BandLow
	case v >= 4 && v <= 7:
		return BandMid
	case v >= 8 && v <= 10:
		return BandHigh
	default:
		return BandUnclassified
	}
}
