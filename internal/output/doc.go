// Package output formats scorecard reports for display or machine consumption.
//
// Five formats are supported:
//   - text     aligned terminal table, sub-score cells coloured by band (default)
//   - json     full structured report with rows and summary
//   - markdown GitHub-flavoured table with emoji band markers
//   - csv      rows in the data file layout
//   - html     standalone page rendered from the markdown report
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then call
// [Writer.Write] with an [io.Writer] and a [*review.Report]. [ChartWriter]
// draws bar charts of totals or a single sub-score. [WriteReport] and [Emit]
// handle destination selection.
package output
