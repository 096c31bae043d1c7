package main

import (
	"fmt"

	"github.com/gorustyt/fenav/pathfinder"
	"github.com/spf13/cobra"
)

func PathCmd() *cobra.Command {
	var from, to string
	var agent uint32
	c := &cobra.Command{
		Use:   "path <mesh>",
		Short: "plan a path and print its corridor and waypoints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseVec3(from)
			if err != nil {
				return err
			}
			end, err := parseVec3(to)
			if err != nil {
				return err
			}
			m, err := loadMesh(args[0])
			if err != nil {
				return err
			}

			pf := pathfinder.New(m, appConfig.PathfinderOptions()...)
			p := pathfinder.NewPath()
			status := pf.FindPath(start, end, agent, p)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "status:    %v (%v)\n", status, p.Detail())
			if status.Failed() {
				return fmt.Errorf("no path from %v to %v: %v", start, end, status)
			}
			fmt.Fprintf(out, "corridor:  %v\n", p.Corridor())
			fmt.Fprintf(out, "cost:      %.3f\n", m.PathCost(p.Corridor()))
			fmt.Fprintf(out, "waypoints: %d\n", len(p.Waypoints()))
			for i, w := range p.Waypoints() {
				fmt.Fprintf(out, "  %d: %.3f %.3f %.3f\n", i, w[0], w[1], w[2])
			}
			return nil
		},
	}
	c.Flags().StringVar(&from, "from", "", "start position x,y,z")
	c.Flags().StringVar(&to, "to", "", "end position x,y,z")
	c.Flags().Uint32Var(&agent, "agent", 0, "agent id recorded on the path")
	_ = c.MarkFlagRequired("from")
	_ = c.MarkFlagRequired("to")
	return c
}
