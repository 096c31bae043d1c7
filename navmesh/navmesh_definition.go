package navmesh

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hjson/hjson-go/v4"
	"github.com/vmihailenco/msgpack/v5"
)

// Definition is the human-editable form of a mesh:
//
//	{
//	  # two unit squares side by side
//	  vertices: [[0,0,0],[1,0,0],[2,0,0],[2,0,1],[1,0,1],[0,0,1]]
//	  polygons: [[0,1,4,5],[1,2,3,4]]
//	}
type Definition struct {
	Vertices [][]float32 `json:"vertices" msgpack:"vertices" jsonschema:"required,description=Vertex positions as [x y z] triples. Y is up."`
	Polygons [][]int32   `json:"polygons" msgpack:"polygons" jsonschema:"required,description=Convex polygons as 3 to 8 indices into vertices with consistent winding."`
}

// Definition exports the mesh vertices and polygons.
func (m *NavMesh) Definition() Definition {
	def := Definition{
		Vertices: make([][]float32, 0, len(m.verts)),
		Polygons: make([][]int32, 0, len(m.polys)),
	}
	for _, v := range m.verts {
		def.Vertices = append(def.Vertices, []float32{v[0], v[1], v[2]})
	}
	for _, p := range m.polys {
		def.Polygons = append(def.Polygons, append([]int32(nil), p.Verts...))
	}
	return def
}

// Build creates a connected mesh from the definition.
func (def Definition) Build(opts ...Option) (*NavMesh, error) {
	m := NewNavMesh(opts...)
	for i, v := range def.Vertices {
		if len(v) != 3 {
			return nil, fmt.Errorf("navmesh definition: vertex %d has %d components", i, len(v))
		}
		if _, status := m.AddVertex(Vec3{v[0], v[1], v[2]}); status.Failed() {
			return nil, fmt.Errorf("navmesh definition: vertex %d: %v", i, status)
		}
	}
	for i, p := range def.Polygons {
		if _, status := m.AddPolygon(Poly{Verts: p}); status.Failed() {
			return nil, fmt.Errorf("%w %d: %v", ErrBadPolygon, i, status)
		}
	}
	m.BuildConnections()
	return m, nil
}

// LoadDefinition parses an hjson (or plain json) mesh definition.
func LoadDefinition(data []byte, opts ...Option) (*NavMesh, error) {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		data = data[3:]
	}
	def := new(Definition)
	if err := hjson.Unmarshal(data, def); err != nil {
		return nil, fmt.Errorf("navmesh definition: %w", err)
	}
	return def.Build(opts...)
}

// MarshalDefinition renders the mesh as hjson.
func (m *NavMesh) MarshalDefinition() ([]byte, error) {
	return hjson.Marshal(m.Definition())
}

// UnmarshalMsgpack decodes a definition written by MarshalMsgpack.
func UnmarshalMsgpack(data []byte, opts ...Option) (*NavMesh, error) {
	def := new(Definition)
	if err := msgpack.Unmarshal(data, def); err != nil {
		return nil, fmt.Errorf("navmesh msgpack: %w", err)
	}
	return def.Build(opts...)
}

func (m *NavMesh) MarshalMsgpack() ([]byte, error) {
	return msgpack.Marshal(m.Definition())
}

const (
	ExtBinary  = ".navbin"
	ExtProto   = ".navpb"
	ExtMsgpack = ".navmp"
	ExtHjson   = ".hjson"
	ExtJSON    = ".json"
)

// LoadFile reads a mesh, choosing the decoder from the file extension.
func LoadFile(path string, opts ...Option) (*NavMesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtBinary:
		return FromBin(data, opts...)
	case ExtProto:
		return UnmarshalProto(data, opts...)
	case ExtMsgpack:
		return UnmarshalMsgpack(data, opts...)
	case ExtHjson, ExtJSON:
		return LoadDefinition(data, opts...)
	default:
		return nil, fmt.Errorf("navmesh: unknown file type %q", filepath.Ext(path))
	}
}

// SaveFile writes the mesh, choosing the encoder from the file extension.
func (m *NavMesh) SaveFile(path string) error {
	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtBinary:
		data = m.ToBin()
	case ExtProto:
		var err error
		if data, err = m.MarshalProto(); err != nil {
			return err
		}
	case ExtMsgpack:
		var err error
		if data, err = m.MarshalMsgpack(); err != nil {
			return err
		}
	case ExtHjson:
		var err error
		if data, err = m.MarshalDefinition(); err != nil {
			return err
		}
	case ExtJSON:
		var err error
		if data, err = json.MarshalIndent(m.Definition(), "", "  "); err != nil {
			return err
		}
	default:
		return fmt.Errorf("navmesh: unknown file type %q", filepath.Ext(path))
	}
	return os.WriteFile(path, data, 0o644)
}
