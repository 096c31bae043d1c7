package navmesh

import (
	"fmt"

	"github.com/gorustyt/fenav/common/message"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Field numbers of the messages in navmesh.proto.
const (
	protoMeshVerts     protoreflect.FieldNumber = 1
	protoMeshPolys     protoreflect.FieldNumber = 2
	protoMeshConnected protoreflect.FieldNumber = 3

	protoVertX protoreflect.FieldNumber = 1
	protoVertY protoreflect.FieldNumber = 2
	protoVertZ protoreflect.FieldNumber = 3

	protoPolyVerts protoreflect.FieldNumber = 1
)

func protoField(name string, num protoreflect.FieldNumber, typ descriptorpb.FieldDescriptorProto_Type, repeated bool, typeName string) *descriptorpb.FieldDescriptorProto {
	label := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
	if repeated {
		label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED
	}
	f := &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		JsonName: proto.String(name),
		Number:   proto.Int32(int32(num)),
		Label:    label.Enum(),
		Type:     typ.Enum(),
	}
	if typeName != "" {
		f.TypeName = proto.String(typeName)
	}
	return f
}

// navMeshProtoFile is the descriptor of navmesh.proto; keep the two in sync.
var navMeshProtoFile = func() protoreflect.FileDescriptor {
	fd := &descriptorpb.FileDescriptorProto{
		Name:    proto.String("navmesh.proto"),
		Package: proto.String("fenav"),
		Syntax:  proto.String("proto3"),
		Options: &descriptorpb.FileOptions{GoPackage: proto.String("github.com/gorustyt/fenav/navmesh")},
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Vertex"),
				Field: []*descriptorpb.FieldDescriptorProto{
					protoField("x", protoVertX, descriptorpb.FieldDescriptorProto_TYPE_FLOAT, false, ""),
					protoField("y", protoVertY, descriptorpb.FieldDescriptorProto_TYPE_FLOAT, false, ""),
					protoField("z", protoVertZ, descriptorpb.FieldDescriptorProto_TYPE_FLOAT, false, ""),
				},
			},
			{
				Name: proto.String("Polygon"),
				Field: []*descriptorpb.FieldDescriptorProto{
					protoField("verts", protoPolyVerts, descriptorpb.FieldDescriptorProto_TYPE_INT32, true, ""),
				},
			},
			{
				Name: proto.String("NavMeshData"),
				Field: []*descriptorpb.FieldDescriptorProto{
					protoField("verts", protoMeshVerts, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, true, ".fenav.Vertex"),
					protoField("polys", protoMeshPolys, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, true, ".fenav.Polygon"),
					protoField("connected", protoMeshConnected, descriptorpb.FieldDescriptorProto_TYPE_BOOL, false, ""),
				},
			},
		},
	}
	f, err := protodesc.NewFile(fd, nil)
	if err != nil {
		panic(fmt.Sprintf("navmesh.proto descriptor: %v", err))
	}
	return f
}()

var (
	protoVertexDesc  = navMeshProtoFile.Messages().ByName("Vertex")
	protoPolygonDesc = navMeshProtoFile.Messages().ByName("Polygon")
	protoMeshDesc    = navMeshProtoFile.Messages().ByName("NavMeshData")
)

// MarshalProto encodes the mesh as a fenav.NavMeshData protobuf message.
func (m *NavMesh) MarshalProto() ([]byte, error) {
	msg := dynamicpb.NewMessage(protoMeshDesc)
	fields := protoMeshDesc.Fields()

	vf := protoVertexDesc.Fields()
	verts := msg.Mutable(fields.ByNumber(protoMeshVerts)).List()
	for _, v := range m.verts {
		e := verts.NewElement()
		vm := e.Message()
		vm.Set(vf.ByNumber(protoVertX), protoreflect.ValueOfFloat32(v[0]))
		vm.Set(vf.ByNumber(protoVertY), protoreflect.ValueOfFloat32(v[1]))
		vm.Set(vf.ByNumber(protoVertZ), protoreflect.ValueOfFloat32(v[2]))
		verts.Append(e)
	}

	pf := protoPolygonDesc.Fields().ByNumber(protoPolyVerts)
	polys := msg.Mutable(fields.ByNumber(protoMeshPolys)).List()
	for _, p := range m.polys {
		e := polys.NewElement()
		idx := e.Message().Mutable(pf).List()
		for _, vi := range p.Verts {
			idx.Append(protoreflect.ValueOfInt32(vi))
		}
		polys.Append(e)
	}

	if m.connected {
		msg.Set(fields.ByNumber(protoMeshConnected), protoreflect.ValueOfBool(true))
	}
	return message.Encode(msg)
}

// UnmarshalProto decodes a fenav.NavMeshData message into a new mesh.
// Unknown fields are skipped and polygon indices may be packed or not.
func UnmarshalProto(data []byte, opts ...Option) (*NavMesh, error) {
	msg := dynamicpb.NewMessage(protoMeshDesc)
	if err := message.Decode(data, msg); err != nil {
		return nil, fmt.Errorf("navmesh proto: %w", err)
	}
	fields := protoMeshDesc.Fields()
	m := NewNavMesh(opts...)

	vf := protoVertexDesc.Fields()
	verts := msg.Get(fields.ByNumber(protoMeshVerts)).List()
	for i := 0; i < verts.Len(); i++ {
		vm := verts.Get(i).Message()
		v := Vec3{
			float32(vm.Get(vf.ByNumber(protoVertX)).Float()),
			float32(vm.Get(vf.ByNumber(protoVertY)).Float()),
			float32(vm.Get(vf.ByNumber(protoVertZ)).Float()),
		}
		if _, status := m.AddVertex(v); status.Failed() {
			return nil, fmt.Errorf("navmesh proto vertex %d: %v", i, status)
		}
	}

	pf := protoPolygonDesc.Fields().ByNumber(protoPolyVerts)
	polys := msg.Get(fields.ByNumber(protoMeshPolys)).List()
	for i := 0; i < polys.Len(); i++ {
		idx := polys.Get(i).Message().Get(pf).List()
		pv := make([]int32, idx.Len())
		for j := range pv {
			pv[j] = int32(idx.Get(j).Int())
		}
		if _, status := m.AddPolygon(Poly{Verts: pv}); status.Failed() {
			return nil, fmt.Errorf("%w %d: %v", ErrBadPolygon, i, status)
		}
	}

	if msg.Get(fields.ByNumber(protoMeshConnected)).Bool() {
		m.BuildConnections()
	}
	return m, nil
}
