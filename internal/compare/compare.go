package compare

import (
	"errors"
	"fmt"

	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/gonum/stat"
)

// ErrDiffer signals that at least one variable differed between the trees.
var ErrDiffer = errors.New("not all distributions same")

// DefaultBins is the number of bins used for comparison histograms.
const DefaultBins = 50

// Verdict classifies a single variable comparison.
type Verdict int

const (
	Same Verdict = iota
	Differs
	Skipped
)

// Binning describes a shared histogram axis for one variable.
type Binning struct {
	Bins     int
	Min, Max float64
}

// Stats summarizes one column of values.
type Stats struct {
	Entries int
	Mean    float64
	StdDev  float64
}

// Result is the outcome of comparing one variable across the two trees.
type Result struct {
	Branch   string
	Name     string // full variable name
	PlotName string // output file stem
	Ref, Cmp Stats
	Verdict  Verdict
	Notes    []string
}

// AutoBinning derives a shared axis from both columns: the union of their
// ranges, split into DefaultBins bins. Degenerate ranges are padded so a
// constant column still gets a drawable axis.
func AutoBinning(ref, cmp []float64) Binning {
	b := Binning{Bins: DefaultBins}
	first := true
	for _, xs := range [][]float64{ref, cmp} {
		for _, x := range xs {
			if first {
				b.Min, b.Max = x, x
				first = false
				continue
			}
			if x < b.Min {
				b.Min = x
			}
			if x > b.Max {
				b.Max = x
			}
		}
	}
	if first {
		b.Min, b.Max = 0, 1
	}
	if b.Min == b.Max {
		b.Min -= 0.5
		b.Max += 0.5
	}
	return b
}

// Fill builds a histogram of the column over the given axis.
func Fill(xs []float64, b Binning) *hbook.H1D {
	h := hbook.NewH1D(b.Bins, b.Min, b.Max)
	for _, x := range xs {
		h.Fill(x, 1)
	}
	return h
}

// Describe computes entry count, mean and standard deviation of a column.
// Empty columns report zeros.
func Describe(xs []float64) Stats {
	s := Stats{Entries: len(xs)}
	if len(xs) == 0 {
		return s
	}
	s.Mean = stat.Mean(xs, nil)
	if len(xs) > 1 {
		s.StdDev = stat.StdDev(xs, nil)
	}
	return s
}

// Columns compares the two columns of one variable. Entry counts and
// means are compared exactly: the tool exists to flag any regression
// between files that should be identical. Two empty columns yield a
// Skipped verdict, matching the no-data case where no plot is drawn.
func Columns(branch, name, plotName string, ref, cmp []float64) Result {
	res := Result{
		Branch:   branch,
		Name:     name,
		PlotName: plotName,
		Ref:      Describe(ref),
		Cmp:      Describe(cmp),
	}
	if res.Ref.Entries == 0 && res.Cmp.Entries == 0 {
		res.Verdict = Skipped
		res.Notes = append(res.Notes, "no entries in either tree")
		return res
	}
	if res.Ref.Entries != res.Cmp.Entries {
		res.Verdict = Differs
		res.Notes = append(res.Notes,
			fmt.Sprintf("differing entries %d vs %d", res.Ref.Entries, res.Cmp.Entries))
	}
	if res.Ref.Mean != res.Cmp.Mean {
		res.Verdict = Differs
		res.Notes = append(res.Notes,
			fmt.Sprintf("differing means %v vs %v", res.Ref.Mean, res.Cmp.Mean))
	}
	return res
}

// AnyDiffer reports whether any result carries a Differs verdict.
func AnyDiffer(results []Result) bool {
	for _, r := range results {
		if r.Verdict == Differs {
			return true
		}
	}
	return false
}
