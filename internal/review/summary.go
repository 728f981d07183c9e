package review

// BandCounts holds the number of cells in each band for one field.
type BandCounts struct {
	Low  int `json:"low"`
	Mid  int `json:"mid"`
	High int `json:"high"`
}

// Summary provides an overview of a record set.
type Summary struct {
	Count     int                  `json:"count"`
	TotalMin  int                  `json:"totalMin"`
	TotalMax  int                  `json:"totalMax"`
	TotalMean float64              `json:"totalMean"`
	Bands     map[Field]BandCounts `json:"bands"`
}

// Summarize calculates totals statistics and per-field band counts.
func Summarize(records []Record) Summary {
	s := Summary{
		Count: len(records),
		Bands: make(map[Field]BandCounts, len(Fields)),
	}
	if len(records) == 0 {
		return s
	}

	s.TotalMin = records[0].TotalPoints
	s.TotalMax = records[0].TotalPoints
	sum := 0
	for _, rec := range records {
		sum += rec.TotalPoints
		s.TotalMin = min(s.TotalMin, rec.TotalPoints)
		s.TotalMax = max(s.TotalMax, rec.TotalPoints)

		for _, f := range Fields {
			v, _ := rec.Scores.Get(f)
			counts := s.Bands[f]
			switch Classify(v) {
			case BandLow:
				counts.Low++
			case BandMid:
				counts.Mid++
			case BandHigh:
				counts.High++
			}
			s.Bands[f] = counts
		}
	}
	s.TotalMean = float64(sum) / float64(len(records))
	return s
}
