package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gorustyt/fenav/common"
	"github.com/gorustyt/fenav/common/logger"
	"github.com/gorustyt/fenav/config"
	"github.com/gorustyt/fenav/navmesh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var VERSION = "dev"

// appConfig is loaded by the root command before any subcommand runs.
var appConfig = config.Default()

func RootCmd() *cobra.Command {
	var configFile, logLevel string
	c := &cobra.Command{
		Use:           "navtool",
		Short:         "inspect, convert and query navigation meshes",
		Version:       VERSION,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if err := logger.Init(cfg.Log); err != nil {
				return err
			}
			appConfig = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	c.PersistentFlags().StringVar(&configFile, "config", "", "yaml config file")
	c.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level (debug, info, warn, error)")
	c.AddCommand(
		InfoCmd(),
		PathCmd(),
		ConvertCmd(),
		DrawCmd(),
		SchemaCmd(),
	)
	return c
}

func loadMesh(path string) (*navmesh.NavMesh, error) {
	m, err := navmesh.LoadFile(path, appConfig.NavMeshOptions()...)
	if err != nil {
		return nil, err
	}
	if !m.IsConnected() {
		m.BuildConnections()
	}
	logger.L().Info("navmesh loaded", zap.String("file", path), zap.Int("polys", m.PolyCount()))
	return m, nil
}

// parseVec3 reads "x,y,z"; "x,z" puts the point at height 0.
func parseVec3(s string) (common.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) == 2 {
		parts = []string{parts[0], "0", parts[1]}
	}
	if len(parts) != 3 {
		return common.Vec3{}, fmt.Errorf("position %q: want x,y,z or x,z", s)
	}
	var v common.Vec3
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return common.Vec3{}, fmt.Errorf("position %q: %w", s, err)
		}
		v[i] = float32(f)
	}
	return v, nil
}

func main() {
	if err := RootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "navtool:", err)
		os.Exit(1)
	}
}
