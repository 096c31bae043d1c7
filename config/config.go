// Package config loads the yaml settings shared by the navtool commands.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/gorustyt/fenav/common"
	"github.com/gorustyt/fenav/common/logger"
	"github.com/gorustyt/fenav/navmesh"
	"github.com/gorustyt/fenav/pathfinder"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

type NavMesh struct {
	PointEpsilon float32 `yaml:"point_epsilon"`
	MaxVertices  int     `yaml:"max_vertices"` // 0 means unlimited
	MaxPolygons  int     `yaml:"max_polygons"` // 0 means unlimited
}

type Pathfinder struct {
	WaypointTolerance float32 `yaml:"waypoint_tolerance"`
	ReplanDistance    float32 `yaml:"replan_distance"`
}

type Config struct {
	Log        logger.Config `yaml:"log"`
	NavMesh    NavMesh       `yaml:"navmesh"`
	Pathfinder Pathfinder    `yaml:"pathfinder"`
}

func Default() *Config {
	return &Config{
		Log: logger.DefaultConfig(),
		NavMesh: NavMesh{
			PointEpsilon: common.Epsilon,
		},
		Pathfinder: Pathfinder{
			WaypointTolerance: pathfinder.DefaultWaypointTolerance,
			ReplanDistance:    pathfinder.DefaultReplanDistance,
		},
	}
}

// Load reads a yaml file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var err error
	if _, e := logger.ParseLevel(c.Log.Level); e != nil {
		err = multierr.Append(err, e)
	}
	if c.Log.File != "" && c.Log.MaxSizeMB <= 0 {
		err = multierr.Append(err, errors.New("log.max_size_mb must be positive when log.file is set"))
	}
	if c.NavMesh.PointEpsilon <= 0 {
		err = multierr.Append(err, fmt.Errorf("navmesh.point_epsilon must be positive, got %v", c.NavMesh.PointEpsilon))
	}
	if c.NavMesh.MaxVertices < 0 {
		err = multierr.Append(err, fmt.Errorf("navmesh.max_vertices must not be negative, got %d", c.NavMesh.MaxVertices))
	}
	if c.NavMesh.MaxPolygons < 0 {
		err = multierr.Append(err, fmt.Errorf("navmesh.max_polygons must not be negative, got %d", c.NavMesh.MaxPolygons))
	}
	if c.Pathfinder.WaypointTolerance <= 0 {
		err = multierr.Append(err, fmt.Errorf("pathfinder.waypoint_tolerance must be positive, got %v", c.Pathfinder.WaypointTolerance))
	}
	if c.Pathfinder.ReplanDistance <= 0 {
		err = multierr.Append(err, fmt.Errorf("pathfinder.replan_distance must be positive, got %v", c.Pathfinder.ReplanDistance))
	}
	return err
}

func (c *Config) NavMeshOptions() []navmesh.Option {
	return []navmesh.Option{
		navmesh.WithEpsilon(c.NavMesh.PointEpsilon),
		navmesh.WithCapacity(c.NavMesh.MaxVertices, c.NavMesh.MaxPolygons),
		navmesh.WithLogger(logger.L().Named("navmesh")),
	}
}

func (c *Config) PathfinderOptions() []pathfinder.Option {
	return []pathfinder.Option{
		pathfinder.WithTolerance(c.Pathfinder.WaypointTolerance),
		pathfinder.WithReplanDistance(c.Pathfinder.ReplanDistance),
		pathfinder.WithLogger(logger.L().Named("pathfinder")),
	}
}
