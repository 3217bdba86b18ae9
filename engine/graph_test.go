package engine

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-modular/dsp/core"
	"github.com/cwbudde/algo-modular/midi"
)

// testNode is a minimal node with scriptable behavior for scheduler and
// wiring tests.
type testNode struct {
	ports   []Port
	in      map[int][]float64
	events  []midi.Event
	gates   []bool
	runs    int
	process func(n *testNode, env Env)
}

func (n *testNode) Ports() []Port { return n.ports }

func (n *testNode) Process(env Env) {
	n.runs++
	if n.process != nil {
		n.process(n, env)
	}
}

func (n *testNode) AudioIn(index int) []float64 { return n.in[index] }

func (n *testNode) PushEvent(index int, ev midi.Event) { n.events = append(n.events, ev) }

func (n *testNode) SetGate(index int, on bool) { n.gates = append(n.gates, on) }

func newTestNode(blockSize int, ports ...Port) *testNode {
	n := &testNode{ports: ports, in: make(map[int][]float64)}
	for _, p := range ports {
		if p.Family == FamilyAudio && p.Direction == DirInput {
			n.in[p.Index] = make([]float64, blockSize)
		}
	}
	return n
}

// testSink is a testNode acting as a scheduling root.
type testSink struct {
	testNode
	ready bool
}

func (s *testSink) Ready() bool { return s.ready }

func newTestSink(blockSize int, ports ...Port) *testSink {
	s := &testSink{ready: true}
	s.ports = ports
	s.in = make(map[int][]float64)
	for _, p := range ports {
		if p.Family == FamilyAudio && p.Direction == DirInput {
			s.in[p.Index] = make([]float64, blockSize)
		}
	}
	return s
}

func newTestGraph() *Graph {
	return New(nil, core.WithBlockSize(4))
}

func TestConnectValidation(t *testing.T) {
	g := newTestGraph()
	src := g.AddNode(newTestNode(4, AudioOut(0), MidiOut(0)))
	dst := g.AddNode(newTestNode(4, AudioIn(0), MidiIn(0)))

	tests := []struct {
		name    string
		source  Address
		target  Address
		wantErr error
	}{
		{"ok", AudioOut(0).At(src), AudioIn(0).At(dst), nil},
		{"family mismatch", MidiOut(0).At(src), AudioIn(0).At(dst), ErrFamilyMismatch},
		{"source not output", AudioIn(0).At(dst), AudioIn(0).At(dst), ErrDirectionMismatch},
		{"target not input", AudioOut(0).At(src), AudioOut(0).At(src), ErrDirectionMismatch},
		{"unknown node", AudioOut(0).At(99), AudioIn(0).At(dst), ErrUnknownNode},
		{"unknown port", AudioOut(7).At(src), AudioIn(0).At(dst), ErrUnknownPort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Connect(tt.source, tt.target)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Connect(%v, %v) = %v, want %v", tt.source, tt.target, err, tt.wantErr)
			}
		})
	}
}

func TestConnectExclusive(t *testing.T) {
	g := newTestGraph()
	a := g.AddNode(newTestNode(4, AudioOut(0)))
	b := g.AddNode(newTestNode(4, AudioOut(0)))
	c := g.AddNode(newTestNode(4, AudioIn(0), AudioIn(1)))

	if err := g.Connect(AudioOut(0).At(a), AudioIn(0).At(c)); err != nil {
		t.Fatalf("first Connect failed: %v", err)
	}
	if err := g.Connect(AudioOut(0).At(b), AudioIn(0).At(c)); !errors.Is(err, ErrPortInUse) {
		t.Errorf("input reuse: got %v, want ErrPortInUse", err)
	}
	if err := g.Connect(AudioOut(0).At(a), AudioIn(1).At(c)); !errors.Is(err, ErrPortInUse) {
		t.Errorf("output reuse: got %v, want ErrPortInUse", err)
	}

	// After disconnecting, both ports are free again.
	g.Disconnect(AudioIn(0).At(c))
	if g.InUse(AudioOut(0).At(a)) {
		t.Error("source still in use after disconnect via target")
	}
	if err := g.Connect(AudioOut(0).At(b), AudioIn(0).At(c)); err != nil {
		t.Errorf("reconnect after disconnect failed: %v", err)
	}
}

func TestOppositeAndDisconnectIdempotent(t *testing.T) {
	g := newTestGraph()
	src := g.AddNode(newTestNode(4, AudioOut(0)))
	dst := g.AddNode(newTestNode(4, AudioIn(0)))

	source := AudioOut(0).At(src)
	target := AudioIn(0).At(dst)
	if err := g.Connect(source, target); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	if peer, ok := g.Opposite(source); !ok || peer != target {
		t.Errorf("Opposite(source) = %v, %v; want %v, true", peer, ok, target)
	}
	if peer, ok := g.Opposite(target); !ok || peer != source {
		t.Errorf("Opposite(target) = %v, %v; want %v, true", peer, ok, source)
	}

	g.Disconnect(source)
	g.Disconnect(source) // second call is a no-op
	if _, ok := g.Opposite(target); ok {
		t.Error("connection survived disconnect")
	}
}

func TestRemoveNodePurgesConnections(t *testing.T) {
	g := newTestGraph()
	src := g.AddNode(newTestNode(4, AudioOut(0)))
	mid := g.AddNode(newTestNode(4, AudioIn(0), AudioOut(0)))
	dst := g.AddNode(newTestNode(4, AudioIn(0)))

	if err := g.Connect(AudioOut(0).At(src), AudioIn(0).At(mid)); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if err := g.Connect(AudioOut(0).At(mid), AudioIn(0).At(dst)); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	g.RemoveNode(mid)

	if _, ok := g.Node(mid); ok {
		t.Error("node still present after RemoveNode")
	}
	if g.InUse(AudioOut(0).At(src)) {
		t.Error("upstream port still in use after peer removal")
	}
	if g.InUse(AudioIn(0).At(dst)) {
		t.Error("downstream port still in use after peer removal")
	}
	g.RemoveNode(mid) // unknown id is a no-op
}

func TestTickLatencyMatchesEdgeDistance(t *testing.T) {
	g := newTestGraph()
	block := g.Config().BlockSize

	src := newTestNode(block, AudioOut(0))
	src.process = func(n *testNode, env Env) {
		out := make([]float64, block)
		for i := range out {
			out[i] = 1
		}
		env.SendBlock(0, out)
	}
	mid := newTestNode(block, AudioIn(0), AudioOut(0))
	mid.process = func(n *testNode, env Env) {
		env.SendBlock(0, n.in[0])
	}
	var seen []float64
	sink := newTestSink(block, AudioIn(0))
	sink.process = func(n *testNode, env Env) {
		seen = append(seen, n.in[0][0])
	}

	srcID := g.AddNode(src)
	midID := g.AddNode(mid)
	sinkID := g.AddNode(sink)
	if err := g.Connect(AudioOut(0).At(srcID), AudioIn(0).At(midID)); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if err := g.Connect(AudioOut(0).At(midID), AudioIn(0).At(sinkID)); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	for i := 0; i < 4; i++ {
		g.Tick()
	}

	// Two edges between source and sink: the source's first block crosses
	// one edge per tick, so the sink observes it on the third tick.
	want := []float64{0, 0, 1, 1}
	for i, v := range want {
		if seen[i] != v {
			t.Fatalf("sink input per tick = %v, want %v", seen, want)
		}
	}
}

func TestTickProcessesSharedUpstreamOnce(t *testing.T) {
	g := newTestGraph()
	block := g.Config().BlockSize

	src := newTestNode(block, AudioOut(0), AudioOut(1))
	left := newTestNode(block, AudioIn(0), AudioOut(0))
	right := newTestNode(block, AudioIn(0), AudioOut(0))
	sink := newTestSink(block, AudioIn(0), AudioIn(1))

	srcID := g.AddNode(src)
	leftID := g.AddNode(left)
	rightID := g.AddNode(right)
	sinkID := g.AddNode(sink)

	wires := []struct{ s, t Address }{
		{AudioOut(0).At(srcID), AudioIn(0).At(leftID)},
		{AudioOut(1).At(srcID), AudioIn(0).At(rightID)},
		{AudioOut(0).At(leftID), AudioIn(0).At(sinkID)},
		{AudioOut(0).At(rightID), AudioIn(1).At(sinkID)},
	}
	for _, w := range wires {
		if err := g.Connect(w.s, w.t); err != nil {
			t.Fatalf("Connect(%v, %v) failed: %v", w.s, w.t, err)
		}
	}

	g.Tick()
	g.Tick()

	// The source feeds the sink along two paths but runs once per tick.
	if src.runs != 2 {
		t.Errorf("shared upstream ran %d times over 2 ticks, want 2", src.runs)
	}
}

func TestTickFeedbackCycleTerminates(t *testing.T) {
	g := newTestGraph()
	block := g.Config().BlockSize

	loop := newTestNode(block, AudioIn(0), AudioOut(0), AudioOut(1))
	loop.process = func(n *testNode, env Env) {
		env.SendBlock(0, n.in[0])
		env.SendBlock(1, n.in[0])
	}
	sink := newTestSink(block, AudioIn(0))

	loopID := g.AddNode(loop)
	sinkID := g.AddNode(sink)
	if err := g.Connect(AudioOut(0).At(loopID), AudioIn(0).At(sinkID)); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	// Feedback edge back into the same node; carries one tick of delay.
	if err := g.Connect(AudioOut(1).At(loopID), AudioIn(0).At(loopID)); err != nil {
		t.Fatalf("feedback Connect failed: %v", err)
	}

	g.Tick()

	if loop.runs != 1 {
		t.Errorf("looped node ran %d times in one tick, want 1", loop.runs)
	}
}

func TestTickStalledSinkSkipsUpstream(t *testing.T) {
	g := newTestGraph()
	block := g.Config().BlockSize

	src := newTestNode(block, AudioOut(0))
	sink := newTestSink(block, AudioIn(0))
	sink.ready = false

	srcID := g.AddNode(src)
	sinkID := g.AddNode(sink)
	if err := g.Connect(AudioOut(0).At(srcID), AudioIn(0).At(sinkID)); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	g.Tick()
	if src.runs != 0 || sink.runs != 0 {
		t.Errorf("stalled tick ran src=%d sink=%d times, want 0, 0", src.runs, sink.runs)
	}

	sink.ready = true
	g.Tick()
	if src.runs != 1 || sink.runs != 1 {
		t.Errorf("ready tick ran src=%d sink=%d times, want 1, 1", src.runs, sink.runs)
	}
}

func TestTickUnreachableNodeNotProcessed(t *testing.T) {
	g := newTestGraph()
	block := g.Config().BlockSize

	orphan := newTestNode(block, AudioOut(0))
	sink := newTestSink(block, AudioIn(0))
	g.AddNode(orphan)
	g.AddNode(sink)

	g.Tick()
	if orphan.runs != 0 {
		t.Errorf("unconnected node ran %d times, want 0", orphan.runs)
	}
	if sink.runs != 1 {
		t.Errorf("sink ran %d times, want 1", sink.runs)
	}
}

func TestSendOnUnconnectedPortIsDropped(t *testing.T) {
	g := newTestGraph()
	block := g.Config().BlockSize

	src := newTestSink(block, AudioOut(0), MidiOut(0), TriggerOut(0))
	src.process = func(n *testNode, env Env) {
		env.SendBlock(0, make([]float64, block))
		env.SendEvent(0, midi.Event{Pitch: 60, Message: midi.NoteOn})
		env.SendGate(0, true)
	}
	g.AddNode(src)

	g.Tick() // must not panic
	if src.runs != 1 {
		t.Fatalf("source ran %d times, want 1", src.runs)
	}
}

func TestDeliver(t *testing.T) {
	g := newTestGraph()
	n := newTestNode(4, MidiIn(0), AudioOut(0))
	id := g.AddNode(n)

	ev := midi.Event{Pitch: 64, Message: midi.NoteOn}
	if err := g.Deliver(MidiIn(0).At(id), ev); err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}
	if len(n.events) != 1 || n.events[0] != ev {
		t.Errorf("delivered events = %v, want [%v]", n.events, ev)
	}

	if err := g.Deliver(AudioOut(0).At(id), ev); !errors.Is(err, ErrFamilyMismatch) {
		t.Errorf("Deliver to audio output: got %v, want ErrFamilyMismatch", err)
	}
	if err := g.Deliver(MidiIn(0).At(99), ev); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Deliver to unknown node: got %v, want ErrUnknownNode", err)
	}
}

func TestAudioDeliveryCopiesBlock(t *testing.T) {
	g := newTestGraph()
	block := g.Config().BlockSize

	scratch := make([]float64, block)
	src := newTestNode(block, AudioOut(0))
	src.process = func(n *testNode, env Env) {
		for i := range scratch {
			scratch[i] = float64(i + 1)
		}
		env.SendBlock(0, scratch)
	}
	sink := newTestSink(block, AudioIn(0))

	srcID := g.AddNode(src)
	sinkID := g.AddNode(sink)
	if err := g.Connect(AudioOut(0).At(srcID), AudioIn(0).At(sinkID)); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	g.Tick()
	// Mutating the sender's scratch after the tick must not alias the
	// receiver's buffer.
	scratch[0] = -1
	if sink.in[0][0] != 1 {
		t.Errorf("receiver buffer aliased the sender's block: got %v", sink.in[0][0])
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register("probe", func(cfg core.ProcessorConfig, params Params) (Node, error) {
		n := newTestNode(cfg.BlockSize, AudioIn(0))
		n.in[0][0] = params.Get("seed", 0)
		return n, nil
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := reg.Register("probe", nil); !errors.Is(err, ErrDuplicateKind) {
		t.Errorf("duplicate Register: got %v, want ErrDuplicateKind", err)
	}

	g := New(reg, core.WithBlockSize(4))
	id, err := g.CreateNode("probe", Params{"seed": 3})
	if err != nil {
		t.Fatalf("CreateNode failed: %v", err)
	}
	n, ok := g.Node(id)
	if !ok {
		t.Fatal("created node not found in graph")
	}
	if got := n.(*testNode).in[0][0]; got != 3 {
		t.Errorf("factory param = %v, want 3", got)
	}

	if _, err := g.CreateNode("bogus", nil); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("CreateNode unknown kind: got %v, want ErrUnknownKind", err)
	}
	if _, err := New(nil).CreateNode("probe", nil); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("CreateNode without registry: got %v, want ErrUnknownKind", err)
	}

	if kinds := reg.Kinds(); len(kinds) != 1 || kinds[0] != "probe" {
		t.Errorf("Kinds() = %v, want [probe]", kinds)
	}
}
