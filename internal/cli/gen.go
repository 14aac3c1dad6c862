package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/rootcmp/internal/rootx"
)

func newGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a ROOT file with a tree of random float branches",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := mustGetStringFlag(cmd, "output")
			treeName := mustGetStringFlag(cmd, "tree-name")
			nbranches, err := cmd.Flags().GetInt("nbranches")
			if err != nil {
				return err
			}
			nentries, err := cmd.Flags().GetInt("nentries")
			if err != nil {
				return err
			}
			seed, err := cmd.Flags().GetInt64("seed")
			if err != nil {
				return err
			}
			if err := rootx.WriteRandomTree(output, treeName, nbranches, nentries, seed); err != nil {
				return fmt.Errorf("generate tree: %w", err)
			}
			fmt.Printf("Wrote %d entries x %d branches to %s:%s\n", nentries, nbranches, output, treeName)
			return nil
		},
	}
	cmd.Flags().Int("nbranches", 10, "Number of branches in the tree")
	cmd.Flags().Int("nentries", 100, "Number of entries in the tree")
	cmd.Flags().String("output", "tree.root", "Output ROOT filename")
	// Local flag shadows the root --tree-name; generated fixtures default
	// to a short tree name.
	cmd.Flags().String("tree-name", "tree", "Name of the generated TTree")
	cmd.Flags().Int64("seed", 0, "Random number seed; 0 for a time-based seed")
	return cmd
}
