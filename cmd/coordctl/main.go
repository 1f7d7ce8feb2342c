package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hvmartinez/coordsim/internal/core/domain"
	"github.com/hvmartinez/coordsim/internal/core/usecases"
	"github.com/hvmartinez/coordsim/internal/pkg/geometry"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "coordctl",
		Short: "Radius-ratio coordination number calculator",
		Long: `Classify cation/anion radius pairs into coordination numbers and
geometries using Pauling's radius-ratio rules, without starting the
interactive simulator.`,
	}

	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(tableCmd())
	rootCmd.AddCommand(sweepCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// classifyCmd evaluates one radius pair.
func classifyCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "classify <cation-radius> <anion-radius>",
		Short: "Classify a cation/anion radius pair (radii in Å)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cation, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("cation radius: %w", err)
			}
			anion, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("anion radius: %w", err)
			}

			result, err := domain.Classify(cation, anion)
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			fmt.Printf("r/R             = %.3f\n", result.Ratio)
			fmt.Printf("NC              = %d (%s)\n", result.CoordinationNumber, result.Geometry)
			fmt.Printf("stable interval = %s\n", result.Interval.Label())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the result as JSON")
	return cmd
}

// tableCmd prints the stability table.
func tableCmd() *cobra.Command {
	var exact bool

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the radius-ratio stability table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if exact {
				fmt.Printf("%-18s %-4s %-20s %s\n", "interval", "NC", "geometry", "exact lower bound")
			} else {
				fmt.Printf("%-18s %-4s %s\n", "interval", "NC", "geometry")
			}

			for _, iv := range domain.Pauling {
				if !exact {
					fmt.Printf("%-18s %-4d %s\n", iv.Label(), iv.CoordinationNumber, iv.Geometry)
					continue
				}
				derived := "-"
				if limit, ok := geometry.ExactLimit(iv.CoordinationNumber); ok {
					derived = fmt.Sprintf("%.6f", limit)
				}
				fmt.Printf("%-18s %-4d %-20s %s\n", iv.Label(), iv.CoordinationNumber, iv.Geometry, derived)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&exact, "exact", false, "show the exact hard-sphere critical ratios alongside the published bounds")
	return cmd
}

// sweepCmd emits a CSV sweep series for plotting.
func sweepCmd() *cobra.Command {
	var (
		cation   float64
		minAnion float64
		maxAnion float64
		steps    int
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Emit r/R over an anion radius range as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := usecases.NewClassifierService(domain.Pauling, nil)
			points, err := svc.Sweep(context.Background(), cation, minAnion, maxAnion, steps)
			if err != nil {
				return err
			}

			fmt.Println("anion_radius,ratio,coordination_number")
			for _, p := range points {
				fmt.Printf("%.4f,%.6f,%d\n", p.AnionRadius, p.Ratio, p.CoordinationNumber)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&cation, "cation", 1.0, "fixed cation radius in Å")
	cmd.Flags().Float64Var(&minAnion, "min", 0.1, "anion radius range start in Å")
	cmd.Flags().Float64Var(&maxAnion, "max", 2.5, "anion radius range end in Å")
	cmd.Flags().IntVar(&steps, "steps", 0, "number of samples (default 241)")
	return cmd
}
