// Package sheets exports review records to a Google Sheets spreadsheet
// using a service-account key.
//
// The first sheet of the target spreadsheet is cleared and rewritten with the
// data file header followed by one row per record, and its header row is
// frozen. When no spreadsheet ID is given a new spreadsheet is created.
package sheets
