package core

// aggregate.go computes the report statistics. Every function is pure:
// the input slice is read, never reordered or modified.

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// CategoryPercentages returns the share of records in each of Categories,
// in order. A record counts toward a category when its job starts with the
// category prefix, so shares need not sum to 100.
func CategoryPercentages(records []Record) ([]CategoryShare, error) {
	total := len(records)
	if total == 0 {
		return nil, fmt.Errorf("category percentages: %w", ErrNoRecords)
	}

	shares := make([]CategoryShare, 0, len(Categories))
	for _, c := range Categories {
		count := 0
		for _, r := range records {
			if c.Matches(r) {
				count++
			}
		}
		shares = append(shares, CategoryShare{
			Category: c,
			Count:    count,
			Percent:  roundHalfUp(float64(count) * 100 / float64(total)),
		})
	}

	return shares, nil
}

// roundHalfUp rounds to the nearest integer with halves going up.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// QAAverageAge returns the mean age of QA candidates, truncated to an integer.
func QAAverageAge(records []Record) (int, error) {
	sum, n := 0, 0
	for _, r := range records {
		if !QA.Matches(r) {
			continue
		}
		age, err := ParseAge(r.Age)
		if err != nil {
			return 0, fmt.Errorf("QA average age for %q: %w", r.Name, err)
		}
		sum += age
		n++
	}

	if n == 0 {
		return 0, fmt.Errorf("QA average age: %w", ErrNoQACandidates)
	}

	return int(float64(sum) / float64(n)), nil
}

// ParseAge extracts the leading integer of an age field such as "27 anos".
// The number must be followed by a space.
func ParseAge(s string) (int, error) {
	token, _, ok := strings.Cut(s, " ")
	if !ok {
		return 0, fmt.Errorf("%w: %q has no unit", ErrInvalidAge, s)
	}
	age, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidAge, s, err)
	}
	return age, nil
}

// DistinctRegions returns the number of unique region values.
func DistinctRegions(records []Record) int {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		seen[r.Region] = struct{}{}
	}
	return len(seen)
}

// CountByRegion groups records by region in first-seen order.
func CountByRegion(records []Record) []RegionCount {
	index := make(map[string]int)
	var counts []RegionCount
	for _, r := range records {
		i, ok := index[r.Region]
		if !ok {
			i = len(counts)
			index[r.Region] = i
			counts = append(counts, RegionCount{Region: r.Region})
		}
		counts[i].Count++
	}
	return counts
}

// LeastFrequentRegions returns up to n regions with the fewest candidates,
// ascending by count. Regions with equal counts keep the order in which
// they first appear in records.
func LeastFrequentRegions(records []Record, n int) []RegionCount {
	n = max(n, 0)
	counts := CountByRegion(records)
	slices.SortStableFunc(counts, func(a, b RegionCount) int {
		return cmp.Compare(a.Count, b.Count)
	})
	if n < len(counts) {
		counts = counts[:n]
	}
	return counts
}

// SortedByName returns a copy of records ordered by name, byte-wise
// ascending. Records with equal names keep their input order.
func SortedByName(records []Record) []Record {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b Record) int {
		return strings.Compare(a.Name, b.Name)
	})
	return sorted
}
