package engine

import "errors"

var (
	// ErrUnknownNode reports an operation on a node identifier that is not
	// present in the graph.
	ErrUnknownNode = errors.New("engine: unknown node")

	// ErrUnknownPort reports an address whose node exists but does not
	// declare the named port.
	ErrUnknownPort = errors.New("engine: unknown port")

	// ErrUnknownKind reports a create request for a kind no factory is
	// registered under.
	ErrUnknownKind = errors.New("engine: unknown node kind")

	// ErrDuplicateKind reports a second registration under an already
	// taken kind name.
	ErrDuplicateKind = errors.New("engine: duplicate node kind")

	// ErrPortInUse reports a connect attempt involving a port that already
	// participates in a connection. Ports are strictly one-to-one; the
	// existing connection must be removed first.
	ErrPortInUse = errors.New("engine: port already connected")

	// ErrFamilyMismatch reports a connect attempt between ports of
	// different payload families.
	ErrFamilyMismatch = errors.New("engine: port family mismatch")

	// ErrDirectionMismatch reports a connect attempt whose source is not
	// an output or whose target is not an input.
	ErrDirectionMismatch = errors.New("engine: port direction mismatch")
)
