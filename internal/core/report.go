package core

import (
	"fmt"
	"io"
)

// RankSize is how many least-frequent regions the report lists.
const RankSize = 2

// Instructor is the fixed closing line of the report.
const Instructor = "Instrutor de Android: Danilo Conrado"

// Reporter writes report sections to the console in a fixed layout.
// The first write error is kept and returned by every later call, so a
// caller can check once per section or only at the end.
type Reporter struct {
	w   io.Writer
	err error
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

// Err returns the first write error, if any.
func (r *Reporter) Err() error {
	return r.err
}

// Shares prints the per-category percentages.
func (r *Reporter) Shares(shares []CategoryShare) error {
	r.printf("Proporção de candidatos por vaga: \n")
	for _, s := range shares {
		r.printf("%s: %d%%\n", s.Category.Label, s.Percent)
	}
	return r.err
}

// QAAverageAge prints the QA average age. No newline follows; the next
// section begins with its own blank lines.
func (r *Reporter) QAAverageAge(age int) error {
	r.printf("\nIdade dos candidatos de QA é: %d", age)
	return r.err
}

// DistinctRegions prints the number of distinct regions.
func (r *Reporter) DistinctRegions(n int) error {
	r.printf("\n\nNúmero de estados distintos presentes na lista: %d\n", n)
	return r.err
}

// LeastFrequent prints the ranked least-frequent regions, starting at #1.
func (r *Reporter) LeastFrequent(ranks []RegionCount) error {
	r.printf("\nRank dos %d estados com menos ocorrências:\n", RankSize)
	for i, rc := range ranks {
		r.printf("#%d %s - %d candidatos\n", i+1, rc.Region, rc.Count)
	}
	return r.err
}

// Sorting announces that the sorted list is being generated.
func (r *Reporter) Sorting() error {
	r.printf("\nGerando lista ordenada...\n")
	return r.err
}

// Exported confirms where the sorted list was saved.
func (r *Reporter) Exported(path string) error {
	r.printf("Lista ordenada salva como: %s\n", path)
	return r.err
}

// Trailer prints the fixed closing line.
func (r *Reporter) Trailer() error {
	r.printf("\n%s\n", Instructor)
	return r.err
}
