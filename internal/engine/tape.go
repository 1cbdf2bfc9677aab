package engine

import (
	"sort"

	"github.com/cinder-ml/cinder/internal/tensor"
)

// node is one recorded forward invocation: the kernel label, the named
// inputs, the tensors the operator saved for its gradient rule, the output,
// and the gradient function. Created per forward call, consumed at most once
// during a backward pass, then discarded.
type node struct {
	label    string
	inputs   Inputs
	saved    []*tensor.RawTensor
	output   *tensor.RawTensor
	grad     GradFunc
	releases []func()
}

// pin reference-pins the node's inputs and saved tensors until release.
func (n *node) pin() {
	for _, in := range n.inputs {
		n.releases = append(n.releases, in.Retain())
	}
	for _, s := range n.saved {
		n.releases = append(n.releases, s.Retain())
	}
}

// release drops the node's pins and its tensor references. The node must not
// be consumed again afterwards.
func (n *node) release() {
	for _, r := range n.releases {
		r()
	}
	n.releases = nil
	n.saved = nil
	n.grad = nil
}

// Tape records forward invocations in execution order and replays their
// gradient rules in reverse.
type Tape struct {
	nodes     []*node
	recording bool
	watched   map[*tensor.RawTensor]struct{}
}

// NewTape creates an empty tape. Recording starts disabled.
func NewTape() *Tape {
	return &Tape{
		nodes:   make([]*node, 0, 64),
		watched: make(map[*tensor.RawTensor]struct{}),
	}
}

// StartRecording enables node recording.
func (t *Tape) StartRecording() {
	t.recording = true
}

// StopRecording disables node recording.
func (t *Tape) StopRecording() {
	t.recording = false
}

// IsRecording returns true while the tape accepts nodes.
func (t *Tape) IsRecording() bool {
	return t.recording
}

// NumOps returns the number of recorded nodes.
func (t *Tape) NumOps() int {
	return len(t.nodes)
}

// Clear discards all recorded nodes and watches, releasing every pinned
// tensor. The recording flag is preserved.
func (t *Tape) Clear() {
	for _, n := range t.nodes {
		n.release()
	}
	t.nodes = t.nodes[:0]
	t.watched = make(map[*tensor.RawTensor]struct{})
}

func (t *Tape) watch(raw *tensor.RawTensor) {
	t.watched[raw] = struct{}{}
}

func (t *Tape) record(n *node) {
	n.pin()
	t.nodes = append(t.nodes, n)
}

// Backward walks the tape in reverse from output, applying each node's
// gradient rule to the upstream gradient and accumulating per-tensor
// results.
//
// A per-input thunk is evaluated only when that input needs a gradient:
// it is watched, or it is itself the output of an earlier node (so the
// gradient must keep flowing). With no watches at all, every input is
// treated as needed. Consumed nodes release their saved tensors
// immediately.
func (t *Tape) Backward(output, outputGrad *tensor.RawTensor, backend tensor.Backend) map[*tensor.RawTensor]*tensor.RawTensor {
	grads := make(map[*tensor.RawTensor]*tensor.RawTensor)
	if len(t.nodes) == 0 {
		return grads
	}

	needed := t.neededSet()
	grads[output] = outputGrad

	for i := len(t.nodes) - 1; i >= 0; i-- {
		n := t.nodes[i]
		if n.grad == nil {
			continue // already consumed
		}
		dy, ok := grads[n.output]
		if !ok {
			continue
		}

		thunks := n.grad(dy, n.saved)

		for _, name := range sortedNames(n.inputs) {
			in := n.inputs[name]
			if needed != nil {
				if _, ok := needed[in]; !ok {
					continue
				}
			}
			thunk, ok := thunks[name]
			if !ok || thunk == nil {
				continue
			}
			g := thunk()
			if existing, ok := grads[in]; ok {
				grads[in] = backend.Add(existing, g)
			} else {
				grads[in] = g
			}
		}

		n.release()
	}

	return grads
}

// neededSet returns the tensors gradients must be computed for: watched
// tensors plus every node output (interior edges gradients flow through).
// Returns nil when nothing is watched, meaning "everything is needed".
func (t *Tape) neededSet() map[*tensor.RawTensor]struct{} {
	if len(t.watched) == 0 {
		return nil
	}
	needed := make(map[*tensor.RawTensor]struct{}, len(t.watched)+len(t.nodes))
	for w := range t.watched {
		needed[w] = struct{}{}
	}
	for _, n := range t.nodes {
		needed[n.output] = struct{}{}
	}
	return needed
}

// sortedNames gives a deterministic input order for accumulation.
func sortedNames(inputs Inputs) []string {
	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
