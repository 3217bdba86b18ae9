package engine

// connectionTable holds the 1:1 wiring between output and input ports.
// Both directions are indexed so that peer lookup is constant time from
// either end of a connection.
type connectionTable struct {
	bySource map[Address]Address // output -> input
	byTarget map[Address]Address // input -> output
}

func newConnectionTable() *connectionTable {
	return &connectionTable{
		bySource: make(map[Address]Address),
		byTarget: make(map[Address]Address),
	}
}

// connect wires source to target. Port existence is validated by the
// graph before the table is touched; the table itself enforces direction,
// family and exclusivity.
func (t *connectionTable) connect(source, target Address) error {
	if source.Port.Direction != DirOutput || target.Port.Direction != DirInput {
		return ErrDirectionMismatch
	}
	if source.Port.Family != target.Port.Family {
		return ErrFamilyMismatch
	}
	if _, ok := t.bySource[source]; ok {
		return ErrPortInUse
	}
	if _, ok := t.byTarget[target]; ok {
		return ErrPortInUse
	}
	t.bySource[source] = target
	t.byTarget[target] = source
	return nil
}

// disconnect removes the connection involving addr, whichever side of it
// addr names. Disconnecting an unconnected port is a no-op.
func (t *connectionTable) disconnect(addr Address) {
	if peer, ok := t.bySource[addr]; ok {
		delete(t.bySource, addr)
		delete(t.byTarget, peer)
		return
	}
	if peer, ok := t.byTarget[addr]; ok {
		delete(t.byTarget, addr)
		delete(t.bySource, peer)
	}
}

// opposite returns the port connected to addr, if any.
func (t *connectionTable) opposite(addr Address) (Address, bool) {
	if peer, ok := t.bySource[addr]; ok {
		return peer, true
	}
	peer, ok := t.byTarget[addr]
	return peer, ok
}

// inUse reports whether addr participates in a connection.
func (t *connectionTable) inUse(addr Address) bool {
	_, ok := t.opposite(addr)
	return ok
}

// purgeNode removes every connection touching the given node.
func (t *connectionTable) purgeNode(id NodeID) {
	for source, target := range t.bySource {
		if source.Node == id || target.Node == id {
			delete(t.bySource, source)
			delete(t.byTarget, target)
		}
	}
}
