package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var speciesFlags struct {
	ndvi  float64
	water float64
	soil  float64
}

var speciesCmd = &cobra.Command{
	Use:   "species",
	Short: "Show the species rule table or recommend species for given factors",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadSpeciesTable()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("ndvi") || cmd.Flags().Changed("water") || cmd.Flags().Changed("soil") {
			names := table.Recommend(speciesFlags.ndvi, speciesFlags.water, speciesFlags.soil)
			if len(names) == 0 {
				cmd.Println("No species recommended for these conditions.")
				return nil
			}
			cmd.Println(strings.Join(names, "\n"))
			return nil
		}

		for _, rule := range table.Rules() {
			cmd.Printf("%-10s ndvi>%.2f water>%.2f soil>%.2f: %s\n",
				rule.Name, rule.MinNDVI, rule.MinWater, rule.MinSoil,
				strings.Join(rule.Species, ", "))
		}
		return nil
	},
}

func init() {
	speciesCmd.Flags().Float64Var(&speciesFlags.ndvi, "ndvi", 0, "vegetation index in [0,1]")
	speciesCmd.Flags().Float64Var(&speciesFlags.water, "water", 0, "water availability in [0,1]")
	speciesCmd.Flags().Float64Var(&speciesFlags.soil, "soil", 0, "soil quality in [0,1]")
	rootCmd.AddCommand(speciesCmd)
}
