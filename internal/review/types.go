package review

// Tool is the name reported in every Report.
const Tool = "scorecard"

// Field identifies one of the ten sub-scores.
type Field string

const (
	FieldQuality                   Field = "quality"
	FieldPrice                     Field = "price"
	FieldReviewsRating             Field = "reviewsRating"
	FieldFunctionality             Field = "functionality"
	FieldNicheFilling              Field = "nicheFilling"
	FieldPotentialForImprovement   Field = "potentialForImprovement"
	FieldEnvironmentalFriendliness Field = "environmentalFriendliness"
	FieldAesthetics                Field = "aesthetics"
	FieldPricePerformanceRatio     Field = "pricePerformanceRatio"
	FieldTrend                     Field = "trend"
)

// Column headers of the data file, in file order.
const (
	ColumnLink  = "Product Link"
	ColumnName  = "Product name"
	ColumnDate  = "Date of item found"
	ColumnTotal = "Total points"
)

type fieldInfo struct {
	flag   string
	column string
	short  string
}

var fieldInfos = map[Field]fieldInfo{
	FieldQuality:                   {"quality", "Quality", "Q"},
	FieldPrice:                     {"price", "Price", "P"},
	FieldReviewsRating:             {"reviews-rating", "Reviews&Rating", "R&R"},
	FieldFunctionality:             {"functionality", "Functionality", "F"},
	FieldNicheFilling:              {"niche-filling", "niche filling", "NF"},
	FieldPotentialForImprovement:   {"potential-for-improvement", "potential for improvement", "PI"},
	FieldEnvironmentalFriendliness: {"environmental-friendliness", "Environmental friendliness and safety", "EF"},
	FieldAesthetics:                {"aesthetics", "Aesthetics", "A"},
	FieldPricePerformanceRatio:     {"price-performance-ratio", "Price-performance ratio", "PPR"},
	FieldTrend:                     {"trend", "Trend", "T"},
}

// Fields lists the sub-score fields in canonical (file) order.
var Fields = []Field{
	FieldQuality,
	FieldPrice,
	FieldReviewsRating,
	FieldFunctionality,
	FieldNicheFilling,
	FieldPotentialForImprovement,
	FieldEnvironmentalFriendliness,
	FieldAesthetics,
	FieldPricePerformanceRatio,
	FieldTrend,
}

// Flag returns the kebab-case CLI flag name for the field.
func (f Field) Flag() string { return fieldInfos[f].flag }

// Column returns the data file header for the field.
func (f Field) Column() string { return fieldInfos[f].column }

// Short returns a compact label for table headings.
func (f Field) Short() string { return fieldInfos[f].short }

// Valid reports whether f is one of the ten known fields.
func (f Field) Valid() bool {
	_, ok := fieldInfos[f]
	return ok
}

// Columns returns the fourteen data file headers in order.
func Columns() []string {
	cols := make([]string, 0, len(Fields)+4)
	cols = append(cols, ColumnLink, ColumnName, ColumnDate)
	for _, f := range Fields {
		cols = append(cols, f.Column())
	}
	return append(cols, ColumnTotal)
}

// SubScores holds the ten ratings of a record.
type SubScores struct {
	Quality                   int `json:"quality" validate:"min=1,max=10"`
	Price                     int `json:"price" validate:"min=1,max=10"`
	ReviewsRating             int `json:"reviewsRating" validate:"min=1,max=10"`
	Functionality             int `json:"functionality" validate:"min=1,max=10"`
	NicheFilling              int `json:"nicheFilling" validate:"min=1,max=10"`
	PotentialForImprovement   int `json:"potentialForImprovement" validate:"min=1,max=10"`
	EnvironmentalFriendliness int `json:"environmentalFriendliness" validate:"min=1,max=10"`
	Aesthetics                int `json:"aesthetics" validate:"min=1,max=10"`
	PricePerformanceRatio     int `json:"pricePerformanceRatio" validate:"min=1,max=10"`
	Trend                     int `json:"trend" validate:"min=1,max=10"`
}

// Values returns the sub-scores in canonical order.
func (s SubScores) Values() []int {
	return []int{
		s.Quality,
		s.Price,
		s.ReviewsRating,
		s.Functionality,
		s.NicheFilling,
		s.PotentialForImprovement,
		s.EnvironmentalFriendliness,
		s.Aesthetics,
		s.PricePerformanceRatio,
		s.Trend,
	}
}

// Get returns the value of field f.
func (s SubScores) Get(f Field) (int, bool) {
	p := s.ptr(f)
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Set assigns v to field f. It returns false for an unknown field.
func (s *SubScores) Set(f Field, v int) bool {
	p := s.ptr(f)
	if p == nil {
		return false
	}
	*p = v
	return true
}

func (s *SubScores) ptr(f Field) *int {
	switch f {
	case FieldQuality:
		return &s.Quality
	case FieldPrice:
		return &s.Price
	case FieldReviewsRating:
		return &s.ReviewsRating
	case FieldFunctionality:
		return &s.Functionality
	case FieldNicheFilling:
		return &s.NicheFilling
	case FieldPotentialForImprovement:
		return &s.PotentialForImprovement
	case FieldEnvironmentalFriendliness:
		return &s.EnvironmentalFriendliness
	case FieldAesthetics:
		return &s.Aesthetics
	case FieldPricePerformanceRatio:
		return &s.PricePerformanceRatio
	case FieldTrend:
		return &s.Trend
	default:
		return nil
	}
}

// SubScoresFromValues builds SubScores from ten values in canonical order.
// Range checks are left to Aggregate.
func SubScoresFromValues(values []int) (SubScores, error) {
	var s SubScores
	if len(values) != len(Fields) {
		return s, &ValidationError{
			Field:  "scores",
			Value:  len(values),
			Reason: "must contain exactly 10 values",
		}
	}
	for i, f := range Fields {
		s.Set(f, values[i])
	}
	return s, nil
}

// Record is one evaluated product. Records are immutable once stored and
// identified only by their position in the store.
type Record struct {
	Link        string    `json:"link"`
	Name        string    `json:"name"`
	DateFound   Date      `json:"dateFound"`
	Scores      SubScores `json:"scores"`
	TotalPoints int       `json:"totalPoints"`
}

// NewRecord validates the date and scores and returns a record with its
// total computed.
func NewRecord(link, name string, dateFound Date, scores SubScores) (Record, error) {
	if err := validateDate(dateFound); err != nil {
		return Record{}, err
	}
	total, err := Aggregate(scores)
	if err != nil {
		return Record{}, err
	}
	return Record{
		Link:        link,
		Name:        name,
		DateFound:   dateFound,
		Scores:      scores,
		TotalPoints: total,
	}, nil
}

// Cell is one render-ready sub-score.
type Cell struct {
	Field Field `json:"field"`
	Value int   `json:"value"`
	Band  Band  `json:"band"`
}

// Row is one render-ready record. Index is the record's position in the
// full store, which is what delete operations take.
type Row struct {
	Index     int    `json:"index"`
	Link      string `json:"link"`
	Name      string `json:"name"`
	DateFound Date   `json:"dateFound"`
	Cells     []Cell `json:"cells"`
	Total     int    `json:"total"`
}

// Cell returns the cell for field f.
func (r Row) Cell(f Field) (Cell, bool) {
	for _, c := range r.Cells {
		if c.Field == f {
			return c, true
		}
	}
	return Cell{}, false
}

// NewRow converts the record at position index into a Row.
func NewRow(index int, rec Record) Row {
	cells := make([]Cell, len(Fields))
	for i, f := range Fields {
		v, _ := rec.Scores.Get(f)
		cells[i] = Cell{Field: f, Value: v, Band: Classify(v)}
	}
	return Row{
		Index:     index,
		Link:      rec.Link,
		Name:      rec.Name,
		DateFound: rec.DateFound,
		Cells:     cells,
		Total:     rec.TotalPoints,
	}
}

// Record converts the row back to the record it was built from.
func (r Row) Record() Record {
	var s SubScores
	for _, c := range r.Cells {
		s.Set(c.Field, c.Value)
	}
	return Record{
		Link:        r.Link,
		Name:        r.Name,
		DateFound:   r.DateFound,
		Scores:      s,
		TotalPoints: r.Total,
	}
}

// Rows converts records to rows indexed by slice position.
func Rows(records []Record) []Row {
	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = NewRow(i, rec)
	}
	return rows
}

// Report is the top-level structure handed to output writers.
type Report struct {
	Tool    string   `json:"tool"`
	Version string   `json:"version"`
	Source  string   `json:"source"`
	Filters []string `json:"filters,omitempty"`
	Rows    []Row    `json:"rows"`
	Summary Summary  `json:"summary"`
}

// BuildReport selects the records matching ranges and summarises them.
// Row indexes refer to positions in records, not in the filtered view.
func BuildReport(source string, records []Record, ranges Ranges) *Report {
	rows := Select(records, ranges)
	matched := make([]Record, len(rows))
	for i, row := range rows {
		matched[i] = records[row.Index]
	}
	return &Report{
		Tool:    Tool,
		Source:  source,
		Filters: ranges.Expressions(),
		Rows:    rows,
		Summary: Summarize(matched),
	}
}
