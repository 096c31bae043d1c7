package main

import (
	"fmt"
	"math"

	"github.com/gorustyt/fenav/debug_utils"
	"github.com/gorustyt/fenav/pathfinder"
	"github.com/spf13/cobra"
)

func DrawCmd() *cobra.Command {
	var from, to string
	var width int
	var fontSize float64
	var ids, colorPolys, grid bool
	c := &cobra.Command{
		Use:   "draw <mesh> <out.png>",
		Short: "render the mesh, and optionally a planned path, to a png",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMesh(args[0])
			if err != nil {
				return err
			}
			bounds := m.Stats().Bounds
			dd := debug_utils.NewImageDebugDraw(bounds, width, 16)
			if err := dd.SetFontSize(fontSize); err != nil {
				return err
			}

			if grid {
				w := int(math.Ceil(float64(bounds.Max[0] - bounds.Min[0])))
				h := int(math.Ceil(float64(bounds.Max[2] - bounds.Min[2])))
				debug_utils.DuDebugDrawGridXZ(dd, bounds.Min[0], 0, bounds.Min[2], w, h, 1, debug_utils.DuRGBA(0, 0, 0, 24), 1)
			}

			var p *pathfinder.Path
			if from != "" || to != "" {
				start, err := parseVec3(from)
				if err != nil {
					return err
				}
				end, err := parseVec3(to)
				if err != nil {
					return err
				}
				p = pathfinder.NewPath()
				if status := pathfinder.New(m, appConfig.PathfinderOptions()...).FindPath(start, end, 0, p); status.Failed() {
					return fmt.Errorf("no path from %v to %v: %v", start, end, status)
				}
			}

			flags := debug_utils.DU_DRAWNAVMESH_CLOSEDLIST
			if ids {
				flags |= debug_utils.DU_DRAWNAVMESH_POLY_IDS
			}
			if colorPolys {
				flags |= debug_utils.DU_DRAWNAVMESH_COLOR_POLYS
			}
			debug_utils.DuDebugDrawNavMesh(dd, m, flags)
			if p != nil {
				debug_utils.DuDebugDrawNavMeshNodes(dd, m)
				debug_utils.DuDebugDrawCorridor(dd, m, p.Corridor(), debug_utils.DuRGBA(255, 0, 255, 255))
				debug_utils.DuDebugDrawPath(dd, p.Waypoints(), debug_utils.DuRGBA(32, 32, 32, 255), 2)
			}

			if err := dd.SavePNG(args[1]); err != nil {
				return err
			}
			b := dd.Image().Bounds()
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", args[1], b.Dx(), b.Dy())
			return nil
		},
	}
	c.Flags().StringVar(&from, "from", "", "start position x,y,z")
	c.Flags().StringVar(&to, "to", "", "end position x,y,z")
	c.Flags().IntVar(&width, "width", 800, "image width in pixels")
	c.Flags().Float64Var(&fontSize, "font-size", 0, "label size in points, 0 for the built-in bitmap font")
	c.Flags().BoolVar(&ids, "ids", false, "label polygons with their ids")
	c.Flags().BoolVar(&colorPolys, "color-polys", false, "give every polygon its own color")
	c.Flags().BoolVar(&grid, "grid", false, "draw a unit grid under the mesh")
	return c
}
