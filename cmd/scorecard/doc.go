// Scorecard is a local CLI for scoring products found while sourcing.
//
// Each product gets ten 1-10 sub-scores. The total is computed, classified
// into colour bands for display, and stored as one row of a flat CSV file.
//
// Usage:
//
//	scorecard init                                  # create an empty data file
//	scorecard add --name Lamp --scores 5,5,5,5,5,5,5,5,5,10
//	scorecard list --range quality=8:10             # filter by sub-score
//	scorecard delete 3 --expect-name Lamp           # delete by position
//	scorecard chart --field trend                   # bar chart
//	scorecard export --format html --out card.html  # write a report
//	scorecard export sheets                         # push to Google Sheets
//	scorecard serve --addr :8080                    # JSON HTTP API
package main
