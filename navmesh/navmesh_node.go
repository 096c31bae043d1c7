package navmesh

import (
	"container/heap"
	"math"
)

const (
	NODE_OPEN   uint8 = 0x01
	NODE_CLOSED uint8 = 0x02
)

// SearchNode is the per-polygon A* scratch record.
type SearchNode struct {
	Id     PolyRef
	G      float32 // cost from the start polygon
	H      float32 // heuristic to the goal polygon
	F      float32 // G + H
	Parent PolyRef
	Flags  uint8

	_index int // position in the open list
}

func (node *SearchNode) SetIndex(index int) {
	node._index = index
}

func (node *SearchNode) GetIndex() int {
	return node._index
}

func (node *SearchNode) IsOpen() bool   { return node.Flags&NODE_OPEN != 0 }
func (node *SearchNode) IsClosed() bool { return node.Flags&NODE_CLOSED != 0 }

func (node *SearchNode) reset(id PolyRef) {
	*node = SearchNode{
		Id:     id,
		G:      float32(math.Inf(1)),
		Parent: InvalidRef,
		_index: -1,
	}
}

type NodeQueueIndex interface {
	SetIndex(index int)
	GetIndex() int
}

type NodeQueue[T any] interface {
	Peek() T         // top of the heap, not removed
	Poll() T         // remove and return the top of the heap
	Update(any) bool // restore heap order after a key change
	Offer(T)
	Reset()
	Empty() bool
	Len() int
}

// nodeQueue is a binary heap whose elements track their own position so
// that a decreased key can be fixed in place.
type nodeQueue[T any] struct {
	data []T
	less func(t1, t2 T) bool
}

func NewNodeQueue[T any](less func(t1, t2 T) bool) NodeQueue[T] {
	q := &nodeQueue[T]{less: less}
	heap.Init(q)
	return q
}

func (q *nodeQueue[T]) Reset() {
	var zero T
	for i := range q.data {
		q.data[i] = zero
	}
	q.data = q.data[:0]
}

func (q *nodeQueue[T]) Peek() T {
	return q.data[0]
}

func (q *nodeQueue[T]) Poll() T { return heap.Pop(q).(T) }

func (q *nodeQueue[T]) Update(value any) bool {
	if v, ok := value.(NodeQueueIndex); ok && v.GetIndex() >= 0 && v.GetIndex() < len(q.data) {
		heap.Fix(q, v.GetIndex())
		return true
	}
	return false
}

func (q *nodeQueue[T]) Offer(value T) { heap.Push(q, value) }

func (q *nodeQueue[T]) Push(x any) {
	q.data = append(q.data, x.(T))
	if v, ok := x.(NodeQueueIndex); ok {
		v.SetIndex(len(q.data) - 1)
	}
}

func (q *nodeQueue[T]) Pop() (res any) {
	n := len(q.data)
	item := q.data[n-1]
	var zero T
	q.data[n-1] = zero
	q.data = q.data[:n-1]
	if v, ok := any(item).(NodeQueueIndex); ok {
		v.SetIndex(-1)
	}
	return item
}

func (q *nodeQueue[T]) Len() int {
	return len(q.data)
}

func (q *nodeQueue[T]) Empty() bool {
	return q.Len() == 0
}

func (q *nodeQueue[T]) Less(i, j int) bool { return q.less(q.data[i], q.data[j]) }

func (q *nodeQueue[T]) Swap(i, j int) {
	q.data[i], q.data[j] = q.data[j], q.data[i]
	if v, ok := any(q.data[i]).(NodeQueueIndex); ok {
		v.SetIndex(i)
	}
	if v, ok := any(q.data[j]).(NodeQueueIndex); ok {
		v.SetIndex(j)
	}
}

// SearchWorkspace holds one SearchNode per polygon plus the open list. It
// belongs to a single NavMesh, is reset at the start of every search and
// is only resized when the polygon count changes. It is not reentrant.
type SearchWorkspace struct {
	nodes []SearchNode
	open  NodeQueue[*SearchNode]
}

func newSearchWorkspace(polyCount int) *SearchWorkspace {
	ws := &SearchWorkspace{
		open: NewNodeQueue(func(a, b *SearchNode) bool {
			if a.F != b.F {
				return a.F < b.F
			}
			if a.H != b.H {
				return a.H < b.H
			}
			return a.Id < b.Id
		}),
	}
	ws.Resize(polyCount)
	return ws
}

// Resize reallocates the node array when polyCount differs from its
// current size.
func (ws *SearchWorkspace) Resize(polyCount int) {
	if polyCount == len(ws.nodes) {
		return
	}
	ws.open.Reset()
	ws.nodes = make([]SearchNode, polyCount)
	ws.Reset()
}

// Reset restores every node to its defaults and empties the open list.
func (ws *SearchWorkspace) Reset() {
	ws.open.Reset()
	for i := range ws.nodes {
		ws.nodes[i].reset(PolyRef(i))
	}
}

func (ws *SearchWorkspace) Len() int { return len(ws.nodes) }

// Node returns the scratch node of ref. The pointer is valid until the
// next Resize.
func (ws *SearchWorkspace) Node(ref PolyRef) *SearchNode {
	if ref < 0 || int(ref) >= len(ws.nodes) {
		return nil
	}
	return &ws.nodes[ref]
}

// Closed returns the polygons closed by the last search, in id order.
func (ws *SearchWorkspace) Closed() []PolyRef {
	var res []PolyRef
	for i := range ws.nodes {
		if ws.nodes[i].IsClosed() {
			res = append(res, ws.nodes[i].Id)
		}
	}
	return res
}
