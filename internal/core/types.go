package core

import "strings"

// Record is one candidate row: name, job, age and region, in file order.
// Values are never modified after loading.
type Record struct {
	Name   string
	Job    string
	Age    string // e.g. "27 years"; only the leading integer is used
	Region string
}

// Fields returns the record as a row in column order.
func (r Record) Fields() []string {
	return []string{r.Name, r.Job, r.Age, r.Region}
}

// recordFields is the number of columns a data line must provide.
const recordFields = 4

// Category is a job-title prefix counted by the report.
type Category struct {
	Prefix string // matched case-sensitively against the start of Record.Job
	Label  string // padded console label
}

// Matches reports whether the record applies for this category.
func (c Category) Matches(r Record) bool {
	return strings.HasPrefix(r.Job, c.Prefix)
}

// Category labels are padded so the percentages line up in the console.
var (
	Android = Category{Prefix: "Android", Label: "Android"}
	IOS     = Category{Prefix: "iOS", Label: "iOS    "}
	QA      = Category{Prefix: "QA", Label: "QA     "}
)

// Categories is the fixed, ordered set reported on.
var Categories = []Category{Android, IOS, QA}

// CategoryShare is the rounded percentage of candidates in one category.
type CategoryShare struct {
	Category Category
	Count    int
	Percent  int
}

// RegionCount is the number of candidates from one region.
type RegionCount struct {
	Region string
	Count  int
}
