package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func InfoCmd() *cobra.Command {
	var strict bool
	c := &cobra.Command{
		Use:   "info <mesh>",
		Short: "print mesh statistics and validation problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMesh(args[0])
			if err != nil {
				return err
			}
			s := m.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "vertices:  %d\n", s.Vertices)
			fmt.Fprintf(out, "polygons:  %d\n", s.Polygons)
			fmt.Fprintf(out, "links:     %d\n", s.Links)
			fmt.Fprintf(out, "connected: %v\n", s.Connected)
			fmt.Fprintf(out, "bounds:    %v - %v\n", s.Bounds.Min, s.Bounds.Max)

			verr := m.Validate()
			problems := multierr.Errors(verr)
			fmt.Fprintf(out, "problems:  %d\n", len(problems))
			for _, p := range problems {
				fmt.Fprintf(out, "  %v\n", p)
			}
			if strict {
				return verr
			}
			return nil
		},
	}
	c.Flags().BoolVar(&strict, "strict", false, "exit with an error when validation fails")
	return c
}
