package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/scorecard/internal/review"
)

var (
	flagName   string
	flagLink   string
	flagDate   string
	flagScores string

	// flagFieldScores holds one --<field> flag per sub-score; 0 means unset.
	flagFieldScores = map[review.Field]*int{}
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new product evaluation",
	Long: "Record a new product. Give the ten sub-scores either with --scores as a " +
		"comma-separated list in column order, or with one flag per sub-score. " +
		"The total is computed from the sub-scores.",
	Example: "  scorecard add --name Lamp --link https://example.com/lamp --scores 5,5,5,5,5,5,5,5,5,10\n" +
		"  scorecard add --name Desk --quality 8 --price 6 --reviews-rating 7 --functionality 9 \\\n" +
		"      --niche-filling 4 --potential-for-improvement 6 --environmental-friendliness 5 \\\n" +
		"      --aesthetics 7 --price-performance-ratio 8 --trend 6",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(nil)
		if err != nil {
			return err
		}

		rec, err := buildRecord()
		if err != nil {
			fail(err)
			return nil
		}
		records, err := e.store.Append(rec)
		if err != nil {
			fail(err)
			return nil
		}

		added := records[len(records)-1]
		fmt.Fprintln(stdout, "Product added successfully!")
		fmt.Fprintf(stdout, "Index: %d | Total points: %d\n", len(records)-1, added.TotalPoints)
		return nil
	},
}

func buildRecord() (review.Record, error) {
	name := strings.TrimSpace(flagName)
	if name == "" {
		return review.Record{}, &review.ValidationError{Field: "name", Value: flagName, Reason: "must not be empty"}
	}

	date := review.Today()
	if flagDate != "" {
		d, err := review.ParseDate(flagDate)
		if err != nil {
			return review.Record{}, &review.ValidationError{Field: "dateFound", Value: flagDate, Reason: "must be a date in YYYY-MM-DD form"}
		}
		date = d
	}

	scores, err := buildScores()
	if err != nil {
		return review.Record{}, err
	}
	return review.NewRecord(strings.TrimSpace(flagLink), name, date, scores)
}

func buildScores() (review.SubScores, error) {
	anyField := false
	for _, f := range review.Fields {
		if *flagFieldScores[f] != 0 {
			anyField = true
		}
	}

	if flagScores != "" {
		if anyField {
			return review.SubScores{}, &review.ValidationError{
				Field:  "scores",
				Reason: "use either --scores or the per-field flags, not both",
			}
		}
		parts := splitComma(flagScores)
		values := make([]int, len(parts))
		for i, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil {
				return review.SubScores{}, &review.ValidationError{Field: "scores", Value: p, Reason: "must be whole numbers"}
			}
			values[i] = n
		}
		return review.SubScoresFromValues(values)
	}

	var (
		s       review.SubScores
		missing []string
	)
	for _, f := range review.Fields {
		v := *flagFieldScores[f]
		if v == 0 {
			missing = append(missing, "--"+f.Flag())
		}
		s.Set(f, v)
	}
	if len(missing) > 0 {
		return review.SubScores{}, &review.ValidationError{
			Field:  "scores",
			Reason: "missing " + strings.Join(missing, ", "),
		}
	}
	return s, nil
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func init() {
	addCmd.Flags().StringVar(&flagName, "name", "", "Product name")
	addCmd.Flags().StringVar(&flagLink, "link", "", "Product link")
	addCmd.Flags().StringVar(&flagDate, "date", "", "Date the product was found, YYYY-MM-DD (default: today)")
	addCmd.Flags().StringVar(&flagScores, "scores", "", "Ten comma-separated sub-scores in column order")
	for _, f := range review.Fields {
		v := new(int)
		flagFieldScores[f] = v
		addCmd.Flags().IntVar(v, f.Flag(), 0, fmt.Sprintf("%s sub-score (1-10)", f.Column()))
	}
}
