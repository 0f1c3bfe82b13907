package core

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/candidates/internal/logging"
)

// Archiver copies a run's records to durable storage.
type Archiver interface {
	Archive(ctx context.Context, runID string, records []Record) (int64, error)
}

// Options configures one report run.
type Options struct {
	Input  string // source CSV
	Output string // sorted export destination

	// Archiver is optional; nil skips archiving.
	Archiver Archiver
}

// Run executes the report: load, print each statistic as soon as it is
// computed, export the name-sorted list, then archive. It stops at the
// first failure, so nothing past the failing step is printed.
func Run(ctx context.Context, opts Options, console io.Writer) error {
	start := time.Now()
	logger := logging.WithFields(ctx, "input", opts.Input)
	rep := NewReporter(console)

	records, err := Load(ctx, opts.Input)
	if err != nil {
		return err
	}

	shares, err := CategoryPercentages(records)
	if err != nil {
		return err
	}
	if err := rep.Shares(shares); err != nil {
		return fmt.Errorf("console: %w", err)
	}

	avg, err := QAAverageAge(records)
	if err != nil {
		return err
	}
	if err := rep.QAAverageAge(avg); err != nil {
		return fmt.Errorf("console: %w", err)
	}

	if err := rep.DistinctRegions(DistinctRegions(records)); err != nil {
		return fmt.Errorf("console: %w", err)
	}

	if err := rep.LeastFrequent(LeastFrequentRegions(records, RankSize)); err != nil {
		return fmt.Errorf("console: %w", err)
	}

	sorted := SortedByName(records)
	if err := rep.Sorting(); err != nil {
		return fmt.Errorf("console: %w", err)
	}

	if err := Export(opts.Output, sorted); err != nil {
		return err
	}
	if err := rep.Exported(opts.Output); err != nil {
		return fmt.Errorf("console: %w", err)
	}

	if err := rep.Trailer(); err != nil {
		return fmt.Errorf("console: %w", err)
	}

	if opts.Archiver != nil {
		n, err := opts.Archiver.Archive(ctx, logging.RunID(ctx), records)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrArchive, err)
		}
		logger.Info("candidates archived", "rows", n)
	}

	logger.Info("report complete",
		"rows", len(records),
		"output", opts.Output,
		"duration", time.Since(start),
	)

	return nil
}
