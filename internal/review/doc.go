// Package review contains the core types and scoring rules for product
// review records.
//
// A [Record] carries ten sub-scores in [1,10] and a derived total computed by
// [Aggregate] when the record is created. [Classify] maps a single sub-score
// to a display [Band]; totals are never classified.
//
// [Filter] and [Select] narrow a record sequence by inclusive per-field
// [Ranges]; [Rows] and [BuildReport] produce render-ready data for the
// output writers, the HTTP server and the spreadsheet exporter.
//
// Errors returned by this package and by the record store match one of the
// sentinels in errors.go via [errors.Is].
package review
