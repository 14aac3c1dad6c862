package compare

import (
	"math"
	"testing"
)

func TestAutoBinning_UnionRange(t *testing.T) {
	ref := []float64{0.5, 2.0, 3.5}
	cmp := []float64{-1.0, 1.0}
	b := AutoBinning(ref, cmp)
	if b.Bins != DefaultBins {
		t.Fatalf("expected %d bins, got %d", DefaultBins, b.Bins)
	}
	if b.Min != -1.0 || b.Max != 3.5 {
		t.Fatalf("expected range [-1, 3.5], got [%v, %v]", b.Min, b.Max)
	}
}

func TestAutoBinning_Degenerate(t *testing.T) {
	b := AutoBinning([]float64{2, 2, 2}, []float64{2})
	if b.Min >= b.Max {
		t.Fatalf("degenerate range not padded: [%v, %v]", b.Min, b.Max)
	}
	if b.Min != 1.5 || b.Max != 2.5 {
		t.Fatalf("expected padded range [1.5, 2.5], got [%v, %v]", b.Min, b.Max)
	}
}

func TestAutoBinning_Empty(t *testing.T) {
	b := AutoBinning(nil, nil)
	if b.Min >= b.Max {
		t.Fatalf("empty input must still give a drawable axis, got [%v, %v]", b.Min, b.Max)
	}
}

func TestFill_CountsAllEntries(t *testing.T) {
	xs := []float64{0.1, 0.2, 0.3, 0.9}
	b := AutoBinning(xs, nil)
	h := Fill(xs, b)
	if got := h.Entries(); got != int64(len(xs)) {
		t.Fatalf("expected %d entries, got %d", len(xs), got)
	}
}

func TestDescribe(t *testing.T) {
	s := Describe([]float64{1, 2, 3, 4})
	if s.Entries != 4 {
		t.Fatalf("expected 4 entries, got %d", s.Entries)
	}
	if s.Mean != 2.5 {
		t.Fatalf("expected mean 2.5, got %v", s.Mean)
	}
	want := math.Sqrt(5.0 / 3.0)
	if math.Abs(s.StdDev-want) > 1e-12 {
		t.Fatalf("expected stddev %v, got %v", want, s.StdDev)
	}

	empty := Describe(nil)
	if empty.Entries != 0 || empty.Mean != 0 || empty.StdDev != 0 {
		t.Fatalf("empty column should report zeros, got %+v", empty)
	}
}

func TestColumns_Same(t *testing.T) {
	xs := []float64{0.25, 0.5, 0.75}
	res := Columns("b", "b.x", "x", xs, []float64{0.25, 0.5, 0.75})
	if res.Verdict != Same {
		t.Fatalf("expected Same, got %v (notes: %v)", res.Verdict, res.Notes)
	}
	if len(res.Notes) != 0 {
		t.Fatalf("expected no notes, got %v", res.Notes)
	}
}

func TestColumns_DifferingEntries(t *testing.T) {
	res := Columns("b", "x", "x", []float64{1, 2, 3}, []float64{1, 2})
	if res.Verdict != Differs {
		t.Fatalf("expected Differs, got %v", res.Verdict)
	}
	if len(res.Notes) == 0 {
		t.Fatalf("expected a differing-entries note")
	}
}

func TestColumns_DifferingMeans(t *testing.T) {
	res := Columns("b", "x", "x", []float64{1, 2, 3}, []float64{1, 2, 4})
	if res.Verdict != Differs {
		t.Fatalf("expected Differs, got %v", res.Verdict)
	}
}

func TestColumns_BothEmptySkipped(t *testing.T) {
	res := Columns("b", "x", "x", nil, nil)
	if res.Verdict != Skipped {
		t.Fatalf("expected Skipped for two empty columns, got %v", res.Verdict)
	}
}

func TestColumns_OneEmptyDiffers(t *testing.T) {
	res := Columns("b", "x", "x", []float64{1}, nil)
	if res.Verdict != Differs {
		t.Fatalf("expected Differs when only one side is empty, got %v", res.Verdict)
	}
}

func TestAnyDiffer(t *testing.T) {
	rs := []Result{{Verdict: Same}, {Verdict: Skipped}}
	if AnyDiffer(rs) {
		t.Fatalf("expected no differ")
	}
	rs = append(rs, Result{Verdict: Differs})
	if !AnyDiffer(rs) {
		t.Fatalf("expected differ")
	}
}
