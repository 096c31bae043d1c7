package navmesh

import (
	"errors"
	"fmt"

	"github.com/gorustyt/fenav/common/rw"
)

const (
	NAVMESH_MAGIC   = 'F'<<24 | 'E'<<16 | 'N'<<8 | 'M'
	NAVMESH_VERSION = 1

	navmeshFlagConnected = 1 << 0
)

var (
	ErrBadMagic   = errors.New("navmesh: wrong magic")
	ErrBadVersion = errors.New("navmesh: wrong version")
	ErrTruncated  = rw.ErrTruncated
	ErrBadPolygon = errors.New("navmesh: bad polygon")
)

func dtAlign4(x int) int { return (x + 3) & ^3 }

func getAlignOffset(old int) int {
	return dtAlign4(old) - old
}

// ToBin serializes vertices and polygons. Adjacency is not stored; it is
// rebuilt on load when the mesh was connected at save time.
//
// Layout (little endian): magic, version, flags, vertCount, polyCount,
// vertCount*(x,y,z float32), then per polygon a vertex count byte padded
// to 4 bytes followed by int32 vertex indices.
func (m *NavMesh) ToBin() []byte {
	w := rw.NewBinWriter()
	w.WriteUInt32(NAVMESH_MAGIC)
	w.WriteUInt32(NAVMESH_VERSION)
	var flags uint32
	if m.connected {
		flags |= navmeshFlagConnected
	}
	w.WriteUInt32(flags)
	w.WriteInt32(int32(len(m.verts)))
	w.WriteInt32(int32(len(m.polys)))
	for _, v := range m.verts {
		w.WriteFloat32s(v[:])
	}
	for _, p := range m.polys {
		w.WriteUInt8(uint8(len(p.Verts)))
		w.PadZero(getAlignOffset(1))
		w.WriteInt32s(p.Verts)
	}
	return w.GetWriteBytes()
}

// FromBin decodes data written by ToBin into a new mesh.
func FromBin(data []byte, opts ...Option) (*NavMesh, error) {
	r := rw.NewBinReader(data)
	if magic := r.ReadUInt32(); r.Err() == nil && magic != NAVMESH_MAGIC {
		return nil, fmt.Errorf("%w: %#x", ErrBadMagic, magic)
	}
	if version := r.ReadUInt32(); r.Err() == nil && version != NAVMESH_VERSION {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, version)
	}
	flags := r.ReadUInt32()
	vertCount := r.ReadInt32()
	polyCount := r.ReadInt32()
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("navmesh header: %w", err)
	}
	if vertCount < 0 || polyCount < 0 || int(vertCount)*12 > r.Size() {
		return nil, fmt.Errorf("%w: %d verts, %d polys", ErrTruncated, vertCount, polyCount)
	}

	m := NewNavMesh(opts...)
	m.verts = make([]Vec3, 0, vertCount)
	for i := int32(0); i < vertCount; i++ {
		var v Vec3
		r.ReadFloat32s(v[:])
		if _, status := m.AddVertex(v); status.Failed() {
			return nil, fmt.Errorf("navmesh vertex %d: %v", i, status)
		}
	}
	var idx [MaxVertsPerPoly]int32
	for i := int32(0); i < polyCount; i++ {
		n := int(r.ReadUInt8())
		r.Skip(getAlignOffset(1))
		if r.Err() == nil && (n < MinVertsPerPoly || n > MaxVertsPerPoly) {
			return nil, fmt.Errorf("%w %d: %d vertices", ErrBadPolygon, i, n)
		}
		r.ReadInt32s(idx[:n])
		if err := r.Err(); err != nil {
			return nil, fmt.Errorf("navmesh polygon %d: %w", i, err)
		}
		if _, status := m.AddPolygon(Poly{Verts: idx[:n]}); status.Failed() {
			return nil, fmt.Errorf("%w %d: %v", ErrBadPolygon, i, status)
		}
	}
	if flags&navmeshFlagConnected != 0 {
		m.BuildConnections()
	}
	return m, nil
}
