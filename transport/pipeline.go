package transport

import (
	"context"
	"sync"
)

// pipelineEntry pairs a transform with its effective priority. The priority
// recorded at registration wins over the transform's own declaration, so a
// caller can re-rank a shared transform per client.
type pipelineEntry struct {
	transform Transform
	priority  int
}

// pipeline is the ordered transform list applied to call-style requests.
// Insertion keeps the list sorted by descending priority; a new entry lands
// before the first position whose existing priority does not exceed it, so
// the most recently added of equal-priority transforms runs first.
type pipeline struct {
	mu      sync.Mutex
	entries []pipelineEntry
}

func (p *pipeline) add(t Transform, priority int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := len(p.entries)
	for i, e := range p.entries {
		if e.priority <= priority {
			idx = i
			break
		}
	}

	p.entries = append(p.entries, pipelineEntry{})
	copy(p.entries[idx+1:], p.entries[idx:])
	p.entries[idx] = pipelineEntry{transform: t, priority: priority}
}

// snapshot returns the entry list as of now. An in-flight request applies
// the snapshot it took when it began; registrations racing with it are
// simply not observed.
func (p *pipeline) snapshot() []pipelineEntry {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]pipelineEntry, len(p.entries))
	copy(out, p.entries)
	return out
}

// apply threads the envelope through every transform in pipeline order. A
// transform returning a nil envelope means "no change" and the previous
// envelope carries forward.
func (p *pipeline) apply(ctx context.Context, env *CallEnvelope) (*CallEnvelope, error) {
	for _, e := range p.snapshot() {
		next, err := e.transform.Apply(ctx, env)
		if err != nil {
			return nil, err
		}
		if next != nil {
			env = next
		}
	}
	return env, nil
}
