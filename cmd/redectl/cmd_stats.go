package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kafune/rede-guti/internal/registry"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Dashboard numbers over the merged collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := engine.Refresh(cmd.Context()); err != nil {
			return err
		}

		overview := registry.BuildOverview(engine.Snapshot())

		fmt.Printf("Total de cadastros: %d\n", overview.Total)
		fmt.Printf("Com indicação:      %d\n", overview.Indicated)

		if len(overview.TopIndicators) > 0 {
			fmt.Println("\nQuem mais indicou:")
			printCounts(overview.TopIndicators)
		}
		if len(overview.TopMunicipalities) > 0 {
			fmt.Println("\nMunicípios com mais cadastros:")
			printCounts(overview.TopMunicipalities)
		}
		return nil
	},
}

func printCounts(counts []registry.NameCount) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, c := range counts {
		fmt.Fprintf(w, "  %s\t%d\n", c.Name, c.Count)
	}
	w.Flush()
}
