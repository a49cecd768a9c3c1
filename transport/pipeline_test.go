package transport

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// markerTransform appends its tag to the envelope body so tests can observe
// execution order.
type markerTransform struct {
	tag      string
	priority int
}

func (m *markerTransform) Priority() int { return m.priority }

func (m *markerTransform) Apply(_ context.Context, env *CallEnvelope) (*CallEnvelope, error) {
	next := env.Clone()
	tags, _ := env.Body.([]string)
	next.Body = append(tags, m.tag)
	return next, nil
}

func applyOrder(t *testing.T, p *pipeline) []string {
	t.Helper()
	env, err := p.apply(context.Background(), &CallEnvelope{Headers: map[string]string{}, Body: []string(nil)})
	require.NoError(t, err)
	tags, _ := env.Body.([]string)
	return tags
}

func TestPipelineOrdersByDescendingPriority(t *testing.T) {
	var p pipeline
	p.add(&markerTransform{tag: "five", priority: 5}, 5)
	p.add(&markerTransform{tag: "ten", priority: 10}, 10)
	p.add(&markerTransform{tag: "one", priority: 1}, 1)

	assert.Equal(t, []string{"ten", "five", "one"}, applyOrder(t, &p))
}

func TestPipelineEqualPriorityLaterAddedRunsFirst(t *testing.T) {
	var p pipeline
	p.add(&markerTransform{tag: "first", priority: 5}, 5)
	p.add(&markerTransform{tag: "second", priority: 5}, 5)
	p.add(&markerTransform{tag: "third", priority: 5}, 5)

	assert.Equal(t, []string{"third", "second", "first"}, applyOrder(t, &p))
}

func TestPipelineMixedPriorities(t *testing.T) {
	var p pipeline
	p.add(&markerTransform{tag: "a", priority: 0}, 0)
	p.add(&markerTransform{tag: "b", priority: 7}, 7)
	p.add(&markerTransform{tag: "c", priority: 0}, 0)
	p.add(&markerTransform{tag: "d", priority: 3}, 3)

	assert.Equal(t, []string{"b", "d", "c", "a"}, applyOrder(t, &p))
}

func TestPipelineNilResultMeansNoChange(t *testing.T) {
	var p pipeline
	p.add(TransformFunc(func(_ context.Context, _ *CallEnvelope) (*CallEnvelope, error) {
		return nil, nil
	}), 0)
	p.add(&markerTransform{tag: "kept"}, 0)

	assert.Equal(t, []string{"kept"}, applyOrder(t, &p))
}

func TestPipelineTransformErrorStopsApplication(t *testing.T) {
	var p pipeline
	p.add(&markerTransform{tag: "ran", priority: 10}, 10)
	p.add(TransformFunc(func(_ context.Context, _ *CallEnvelope) (*CallEnvelope, error) {
		return nil, errors.New("transform failed")
	}), 5)
	p.add(&markerTransform{tag: "never", priority: 1}, 1)

	_, err := p.apply(context.Background(), &CallEnvelope{Headers: map[string]string{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transform failed")
}

func TestAddTransformUsesDeclaredPriority(t *testing.T) {
	client, err := New(Config{Host: "https://astrox.app", Primitive: stubPrimitive(200), Logger: newTestLogger()})
	require.NoError(t, err)

	client.AddTransform(&markerTransform{tag: "low", priority: 1})
	client.AddTransform(&markerTransform{tag: "high", priority: 9})
	client.AddTransformWithPriority(&markerTransform{tag: "forced", priority: 0}, 5)

	assert.Equal(t, []string{"high", "forced", "low"}, applyOrder(t, &client.pipeline))
}
