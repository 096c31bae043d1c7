package main

import (
	"encoding/json"
	"fmt"

	"github.com/gorustyt/fenav/navmesh"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
)

func buildDefinitionSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	schema := reflector.Reflect(new(navmesh.Definition))
	schema.Title = "Navigation Mesh"
	schema.Description = "Hand-authored polygon mesh read by navtool from .hjson and .json files."
	return schema
}

func SchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "print the JSON schema of the mesh definition format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(buildDefinitionSchema(), "", "  ")
			if err != nil {
				return fmt.Errorf("marshal schema: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}
