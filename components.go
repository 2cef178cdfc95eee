package grove

import "go.uber.org/zap"

// componentEntry holds, for one tag, the components attached directly to a
// node and the number of components of that tag in the node's whole subtree.
type componentEntry struct {
	typ   *ComponentType
	list  []Component
	count int
}

// componentStore is a small ordered map keyed by tag identity. Nodes carry
// only a handful of distinct tags, so a linear scan beats a Go map here and
// keeps iteration order stable (first-seen).
type componentStore struct {
	entries []componentEntry
}

func (cs *componentStore) index(t *ComponentType) int {
	for i := range cs.entries {
		if cs.entries[i].typ == t {
			return i
		}
	}
	return -1
}

// entry returns the entry for t, creating it if needed. The pointer is only
// valid until the next call that may grow or compact entries.
func (cs *componentStore) entry(t *ComponentType) *componentEntry {
	if i := cs.index(t); i >= 0 {
		return &cs.entries[i]
	}
	cs.entries = append(cs.entries, componentEntry{typ: t})
	return &cs.entries[len(cs.entries)-1]
}

// compact drops the entry at i when it no longer carries any information.
func (cs *componentStore) compact(i int) {
	e := &cs.entries[i]
	if e.count != 0 || len(e.list) != 0 {
		return
	}
	copy(cs.entries[i:], cs.entries[i+1:])
	cs.entries[len(cs.entries)-1] = componentEntry{}
	cs.entries = cs.entries[:len(cs.entries)-1]
}

func mustType(t *ComponentType) {
	if t == nil {
		panic("grove: nil component type")
	}
}

// componentsSure returns the node's store, allocating it on first use.
func (n *Node) componentsSure() *componentStore {
	if n.components == nil {
		n.components = &componentStore{}
	}
	return n.components
}

// --- Count propagation ---

// propagate adds delta to the subtree count of t on n and every ancestor.
func (n *Node) propagate(t *ComponentType, delta int) {
	if delta == 0 {
		return
	}
	for p := n; p != nil; p = p.Parent {
		cs := p.componentsSure()
		e := cs.entry(t)
		e.count += delta
		if e.count == 0 && len(e.list) == 0 {
			cs.compact(cs.index(t))
		}
	}
}

// propagateSubtree pushes every non-zero count of child onto n and its
// ancestors, multiplied by sign. Used when child is linked (+1) or
// unlinked (-1) under n.
func (n *Node) propagateSubtree(child *Node, sign int) {
	if child.components == nil {
		return
	}
	for _, e := range child.components.entries {
		if e.count != 0 {
			n.propagate(e.typ, sign*e.count)
		}
	}
}

// ComponentCountInDescendants returns the number of components of type t
// attached to this node and all of its descendants. O(1).
func (n *Node) ComponentCountInDescendants(t *ComponentType) int {
	mustType(t)
	if n.components == nil {
		return 0
	}
	if i := n.components.index(t); i >= 0 {
		return n.components.entries[i].count
	}
	return 0
}

// ForEachComponentCount calls fn for every tag with a non-zero subtree count
// at this node.
func (n *Node) ForEachComponentCount(fn func(t *ComponentType, count int)) {
	if n.components == nil {
		return
	}
	for _, e := range n.components.entries {
		if e.count != 0 {
			fn(e.typ, e.count)
		}
	}
}

// --- Attach / detach ---

// AddComponent appends c to this node's components and returns it.
// Attaching the same instance twice stores it twice; callers that want a
// single instance should use GetOrCreateComponent. A component must not be
// attached to more than one node at a time.
// Panics if c or its type is nil.
func (n *Node) AddComponent(c Component) Component {
	if c == nil {
		panic("grove: cannot add nil component")
	}
	t := c.ComponentType()
	mustType(t)
	if globalDebug {
		debugCheckDisposed(n, "AddComponent")
		if n.HasComponent(c) {
			logger.Warn("component attached twice",
				zap.String("node", n.Name), zap.Stringer("type", t))
		}
	}
	e := n.componentsSure().entry(t)
	e.list = append(e.list, c)
	n.propagate(t, +1)
	if a, ok := c.(Attacher); ok {
		a.OnAttach(n)
	}
	return c
}

// Attach is AddComponent with the concrete type preserved.
func Attach[T Component](n *Node, c T) T {
	n.AddComponent(c)
	return c
}

// RemoveComponent removes the first occurrence of c from this node.
// No-op if c is not attached here.
func (n *Node) RemoveComponent(c Component) {
	if c == nil {
		return
	}
	t := c.ComponentType()
	mustType(t)
	if n.components == nil {
		return
	}
	i := n.components.index(t)
	if i < 0 {
		return
	}
	e := &n.components.entries[i]
	pos := -1
	for j, have := range e.list {
		if have == c {
			pos = j
			break
		}
	}
	if pos < 0 {
		return
	}
	copy(e.list[pos:], e.list[pos+1:])
	e.list[len(e.list)-1] = nil
	e.list = e.list[:len(e.list)-1]
	n.propagate(t, -1)
	if d, ok := c.(Detacher); ok {
		d.OnDetach(n)
	}
}

// HasComponent reports whether c is attached directly to this node.
func (n *Node) HasComponent(c Component) bool {
	if c == nil {
		return false
	}
	t := c.ComponentType()
	mustType(t)
	if n.components == nil {
		return false
	}
	i := n.components.index(t)
	if i < 0 {
		return false
	}
	for _, have := range n.components.entries[i].list {
		if have == c {
			return true
		}
	}
	return false
}

// ComponentsOfType returns the components of type t attached directly to
// this node in attach order. The returned slice MUST NOT be mutated.
func (n *Node) ComponentsOfType(t *ComponentType) []Component {
	mustType(t)
	if n.components == nil {
		return nil
	}
	if i := n.components.index(t); i >= 0 {
		return n.components.entries[i].list
	}
	return nil
}

// FirstComponentOfType returns the first component of type t attached
// directly to this node, or nil.
func (n *Node) FirstComponentOfType(t *ComponentType) Component {
	list := n.ComponentsOfType(t)
	if len(list) == 0 {
		return nil
	}
	return list[0]
}

// RemoveAllComponentsOfType detaches every component of type t from this
// node, one at a time, so each fires its own OnDetach.
func (n *Node) RemoveAllComponentsOfType(t *ComponentType) {
	list := n.ComponentsOfType(t)
	if len(list) == 0 {
		return
	}
	snapshot := make([]Component, len(list))
	copy(snapshot, list)
	for _, c := range snapshot {
		n.RemoveComponent(c)
	}
}

// RemoveAllComponents detaches every component attached to this node.
func (n *Node) RemoveAllComponents() {
	if n.components == nil {
		return
	}
	var types []*ComponentType
	for _, e := range n.components.entries {
		if len(e.list) > 0 {
			types = append(types, e.typ)
		}
	}
	for _, t := range types {
		n.RemoveAllComponentsOfType(t)
	}
}

// --- Recursive queries ---

// CollectComponents appends every component of type t in this subtree to out
// and returns the extended slice. Subtrees with a zero count are skipped.
// Order: each child's subtree in child order, then this node's own
// components. stats may be nil.
func (n *Node) CollectComponents(t *ComponentType, out []Component, stats *CollectStats) []Component {
	if n.ComponentCountInDescendants(t) <= 0 {
		return out
	}
	for _, child := range n.children {
		out = child.CollectComponents(t, out, stats)
	}
	local := n.ComponentsOfType(t)
	out = append(out, local...)
	if stats != nil {
		stats.Iterations++
		stats.Results += len(local)
	}
	return out
}

// ForEachComponentOfType calls fn for every component of type t in this
// subtree, in CollectComponents order. fn may attach or detach components;
// the set visited is fixed before the first call.
func (n *Node) ForEachComponentOfType(t *ComponentType, fn func(Component)) {
	count := n.ComponentCountInDescendants(t)
	if count == 0 {
		return
	}
	buf := n.CollectComponents(t, make([]Component, 0, count), nil)
	for _, c := range buf {
		fn(c)
	}
}

// --- Get-or-create ---

// GetOrCreateComponent returns the first component of type t on this node,
// or attaches and returns gen(n) if there is none. gen runs at most once.
func (n *Node) GetOrCreateComponent(t *ComponentType, gen func(*Node) Component) Component {
	if c := n.FirstComponentOfType(t); c != nil {
		return c
	}
	return n.AddComponent(gen(n))
}

// GetOrCreateComponentMatching is GetOrCreateComponent restricted to existing
// components for which match returns true. Use it when several
// implementations share a tag.
func (n *Node) GetOrCreateComponentMatching(t *ComponentType, match func(Component) bool, gen func(*Node) Component) Component {
	for _, c := range n.ComponentsOfType(t) {
		if match(c) {
			return c
		}
	}
	return n.AddComponent(gen(n))
}

// GetOrCreate returns the first component of type t on n whose dynamic type
// is T, or attaches gen(n). Two implementations sharing a tag don't collide.
func GetOrCreate[T Component](n *Node, t *ComponentType, gen func(*Node) T) T {
	for _, c := range n.ComponentsOfType(t) {
		if tc, ok := c.(T); ok {
			return tc
		}
	}
	return Attach(n, gen(n))
}
