// Package core implements the AppAcademy candidate report.
//
// The report is one linear batch pipeline, driven by [Run]:
//
//  1. [Load] reads the semicolon-delimited candidate file, skipping the header
//  2. [CategoryPercentages], [QAAverageAge], [DistinctRegions] and
//     [LeastFrequentRegions] compute the statistics
//  3. [Reporter] prints each statistic to the console as soon as it is computed
//  4. [SortedByName] builds a name-ordered copy of the records
//  5. [Export] writes that copy as a fully quoted CSV
//  6. An optional [Archiver] copies the run to a database
//
// The loaded slice is never reordered; the sorted view is a separate slice.
//
// # Error Handling
//
// Every failure aborts the run. Nothing in the input is repaired or
// skipped: invalid UTF-8, blank lines and quoted fields that run past the
// end of their line all fail the load. Each failure class has a sentinel
// ([ErrInvalidEncoding], [ErrMalformedRow], [ErrNoRecords],
// [ErrNoQACandidates], [ErrInvalidAge], [ErrExport], [ErrArchive])
// wrapped with context, and [MapError] turns any of them into a
// diagnostic code for the log.
package core
