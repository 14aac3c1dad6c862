package compare

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go-hep.org/x/hep/hbook"

	"github.com/interpretive-systems/rootcmp/internal/rootx"
)

// Plotter renders the comparison plot for one variable.
type Plotter interface {
	Comparison(res Result, ref, cmp *hbook.H1D, path string) error
}

// Options configures a comparison run.
type Options struct {
	TreeName  string
	OutputDir string
	Format    string // plot file extension, e.g. "pdf"
	Verbose   bool
	Log       io.Writer // warnings and progress; nil discards
}

// HistPair holds the two histograms of one compared variable, built over
// a shared axis.
type HistPair struct {
	Ref, Cmp *hbook.H1D
}

// Analysis is the outcome of comparing a tree across two files.
type Analysis struct {
	Results []Result
	// Hists maps variable name to its histogram pair. Skipped variables
	// have no entry.
	Hists map[string]HistPair
}

// Analyze compares the named tree across two ROOT files without touching
// the filesystem beyond reading the inputs.
func Analyze(refPath, cmpPath string, opts Options) (*Analysis, error) {
	log := opts.Log
	if log == nil {
		log = io.Discard
	}

	refFile, err := rootx.Open(refPath)
	if err != nil {
		return nil, err
	}
	defer refFile.Close()
	cmpFile, err := rootx.Open(cmpPath)
	if err != nil {
		return nil, err
	}
	defer cmpFile.Close()

	refTree, err := refFile.Tree(opts.TreeName)
	if err != nil {
		return nil, err
	}
	cmpTree, err := cmpFile.Tree(opts.TreeName)
	if err != nil {
		return nil, err
	}

	// Drop variables of branches the comparison tree lacks, with a warning,
	// and decide up front which variables get read at all. Verbose output
	// numbers top-level branches, not variables.
	var kept []rootx.Var
	var names []string
	branchIdx := -1
	lastBranch := ""
	missing := false
	for _, v := range rootx.Vars(refTree) {
		if v.Branch != lastBranch {
			branchIdx++
			lastBranch = v.Branch
			if opts.Verbose {
				fmt.Fprintf(log, "BRANCH %d : %s\n", branchIdx, v.Branch)
			}
			missing = !rootx.HasBranch(cmpTree, v.Branch)
			if missing {
				fmt.Fprintf(log, "WARNING comparison tree doesn't have branch %s\n", v.Branch)
			}
		}
		if missing {
			continue
		}
		kept = append(kept, v)
		if v.Numeric {
			names = append(names, v.Name)
		}
	}

	refCols, err := rootx.Columns(refTree, names)
	if err != nil {
		return nil, fmt.Errorf("reference %s: %w", refPath, err)
	}
	cmpCols, err := rootx.Columns(cmpTree, names)
	if err != nil {
		return nil, fmt.Errorf("comparison %s: %w", cmpPath, err)
	}

	a := &Analysis{Hists: make(map[string]HistPair, len(kept))}
	for _, v := range kept {
		if !v.Numeric {
			a.Results = append(a.Results, Result{
				Branch:   v.Branch,
				Name:     v.Name,
				PlotName: v.PlotName(),
				Verdict:  Skipped,
				Notes:    []string{fmt.Sprintf("unsupported type %s", v.Type)},
			})
			continue
		}

		res := Columns(v.Branch, v.Name, v.PlotName(), refCols[v.Name], cmpCols[v.Name])
		a.Results = append(a.Results, res)
		if res.Verdict == Skipped {
			continue
		}
		b := AutoBinning(refCols[v.Name], cmpCols[v.Name])
		a.Hists[v.Name] = HistPair{
			Ref: Fill(refCols[v.Name], b),
			Cmp: Fill(cmpCols[v.Name], b),
		}
	}
	return a, nil
}

// Run analyzes the two files and, when a plotter is given, writes one
// plot per compared variable under Options.OutputDir/<branch>/, prefixing
// the filename with DIFF_ for differing variables.
func Run(refPath, cmpPath string, opts Options, p Plotter) ([]Result, error) {
	a, err := Analyze(refPath, cmpPath, opts)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return a.Results, nil
	}
	for _, res := range a.Results {
		hp, ok := a.Hists[res.Name]
		if !ok {
			continue
		}
		dir := filepath.Join(opts.OutputDir, res.Branch)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
		stem := res.PlotName + "_compare." + opts.Format
		if res.Verdict == Differs {
			stem = "DIFF_" + stem
		}
		if err := p.Comparison(res, hp.Ref, hp.Cmp, filepath.Join(dir, stem)); err != nil {
			return nil, fmt.Errorf("plot %s: %w", res.Name, err)
		}
	}
	return a.Results, nil
}
