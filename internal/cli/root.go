package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/rootcmp/internal/compare"
	"github.com/interpretive-systems/rootcmp/internal/plotx"
	"github.com/interpretive-systems/rootcmp/internal/prefs"
	"github.com/interpretive-systems/rootcmp/internal/report"
)

const version = "0.1.0"

// ErrUsage wraps flag-parse failures so main can exit 2, keeping exit 1
// reserved for the trees-differ verdict.
var ErrUsage = errors.New("usage error")

const (
	defaultOutputDir = "ComparisonPlots"
	defaultTreeName  = "AnalysisTree"
	defaultFormat    = "pdf"
)

// Execute runs the rootcmp command line. It returns compare.ErrDiffer
// when the comparison ran but found differing variables.
func Execute() error {
	p := prefs.Load()

	root := &cobra.Command{
		Use:   "rootcmp <refFile> <cmpFile>",
		Short: "Compare two ROOT files branch by branch",
		Long: "Rootcmp: produce comparison plots for every branch variable of a\n" +
			"same-named TTree in two ROOT files, and report which variables differ.",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args[0], args[1])
		},
	}

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})

	root.Flags().StringP("output-dir", "o", orDefault(p.OutputDir, p.OutputSet, defaultOutputDir), "Output directory for plots")
	root.PersistentFlags().StringP("tree-name", "t", orDefault(p.TreeName, p.TreeSet, defaultTreeName), "Name of the TTree")
	root.Flags().String("format", orDefault(p.Format, p.FormatSet, defaultFormat), "Output format for plots")
	root.PersistentFlags().BoolP("verbose", "v", false, "More verbose output")

	root.AddCommand(newGenCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the rootcmp version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("rootcmp v" + version)
		},
	})

	if err := root.Execute(); err != nil {
		return fmt.Errorf("execute: %w", err)
	}
	return nil
}

func runCompare(cmd *cobra.Command, refPath, cmpPath string) error {
	outputDir := mustGetStringFlag(cmd, "output-dir")
	format := mustGetStringFlag(cmd, "format")
	if !plotx.ValidFormat(format) {
		return fmt.Errorf("unsupported plot format %q (supported: %v)", format, plotx.Formats)
	}

	opts := compare.Options{
		TreeName:  mustGetStringFlag(cmd, "tree-name"),
		OutputDir: outputDir,
		Format:    format,
		Verbose:   mustGetBoolFlag(cmd, "verbose"),
		Log:       os.Stdout,
	}

	fmt.Println("Plots produced in", outputDir)
	results, err := compare.Run(refPath, cmpPath, opts, plotx.New())
	if err != nil {
		return err
	}
	if report.Summary(os.Stdout, results, opts.Verbose) {
		return compare.ErrDiffer
	}
	return nil
}

func orDefault(v string, set bool, def string) string {
	if set {
		return v
	}
	return def
}

func mustGetStringFlag(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "flag error:", err)
		os.Exit(2)
	}
	return v
}

func mustGetBoolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "flag error:", err)
		os.Exit(2)
	}
	return v
}
