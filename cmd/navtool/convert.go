package main

import (
	"fmt"

	"github.com/gorustyt/fenav/common/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func ConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "convert between .hjson, .json, .navbin, .navpb and .navmp meshes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMesh(args[0])
			if err != nil {
				return err
			}
			if err := m.SaveFile(args[1]); err != nil {
				return err
			}
			logger.L().Info("navmesh converted", zap.String("from", args[0]), zap.String("to", args[1]))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d vertices, %d polygons)\n", args[1], m.VertCount(), m.PolyCount())
			return nil
		},
	}
}
