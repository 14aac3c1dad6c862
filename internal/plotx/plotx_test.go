package plotx

import (
	"os"
	"path/filepath"
	"testing"

	"go-hep.org/x/hep/hbook"

	"github.com/interpretive-systems/rootcmp/internal/compare"
)

func TestValidFormat(t *testing.T) {
	for _, f := range Formats {
		if !ValidFormat(f) {
			t.Fatalf("expected %q to be valid", f)
		}
	}
	if ValidFormat("bmp") {
		t.Fatalf("bmp should not be valid")
	}
}

func TestComparison_WritesFile(t *testing.T) {
	ref := hbook.NewH1D(10, 0, 1)
	cmp := hbook.NewH1D(10, 0, 1)
	for i := 0; i < 100; i++ {
		x := float64(i%10)/10 + 0.05
		ref.Fill(x, 1)
		cmp.Fill(x, 1)
	}

	res := compare.Result{
		Branch:   "branch0",
		Name:     "branch0",
		PlotName: "branch0",
		Ref:      compare.Stats{Entries: 100, Mean: 0.5},
		Cmp:      compare.Stats{Entries: 100, Mean: 0.5},
	}

	path := filepath.Join(t.TempDir(), "branch0_compare.png")
	if err := New().Comparison(res, ref, cmp, path); err != nil {
		t.Fatalf("Comparison: %v", err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected plot file: %v", err)
	}
	if fi.Size() == 0 {
		t.Fatalf("plot file is empty")
	}
}

func TestComparison_EmptyComparisonHist(t *testing.T) {
	ref := hbook.NewH1D(10, 0, 1)
	ref.Fill(0.5, 1)
	cmp := hbook.NewH1D(10, 0, 1)

	res := compare.Result{
		Branch:   "b",
		Name:     "b",
		PlotName: "b",
		Ref:      compare.Stats{Entries: 1, Mean: 0.5},
		Verdict:  compare.Differs,
	}

	path := filepath.Join(t.TempDir(), "DIFF_b_compare.png")
	if err := New().Comparison(res, ref, cmp, path); err != nil {
		t.Fatalf("Comparison with empty cmp hist: %v", err)
	}
}
