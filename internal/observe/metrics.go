// Package observe provides OpenTelemetry metrics for the platformer: ability
// unlocks, condition triggers, and movement actions.
//
// Metrics are recorded through the OpenTelemetry Metrics API and exported to
// Prometheus by [InitProvider]. Tests should build a [Metrics] with
// [NewMetrics] over a ManualReader-backed provider.
//
// A nil *Metrics is valid; every Record method on it is a no-op, so core
// packages can accept one optionally.
package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope for all platformer metrics.
const meterName = "github.com/vovakirdan/tui-platformer"

// Metrics holds the metric instruments. All fields are safe for concurrent
// use.
type Metrics struct {
	// AbilityUnlocks counts granted abilities. Attribute: "ability".
	AbilityUnlocks metric.Int64Counter

	// AbilityRevokes counts revoked abilities. Attribute: "ability".
	AbilityRevokes metric.Int64Counter

	// ConditionTriggers counts triggers by key and whether any entry matched.
	// Attributes: "key", "matched".
	ConditionTriggers metric.Int64Counter

	// Moves counts movement actions. Attribute: "action" (jump, double_jump,
	// dash, wall_jump).
	Moves metric.Int64Counter

	// ActivePlayers tracks the players currently in a session.
	ActivePlayers metric.Int64UpDownCounter

	// FrameDuration tracks game update time per tick.
	FrameDuration metric.Float64Histogram
}

// frameBuckets are histogram boundaries in seconds for a single tick.
var frameBuckets = []float64{
	0.0005, 0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066,
}

// NewMetrics creates the instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.AbilityUnlocks, err = m.Int64Counter("platformer.ability.unlocks",
		metric.WithDescription("Abilities granted, by ability."),
	); err != nil {
		return nil, err
	}
	if met.AbilityRevokes, err = m.Int64Counter("platformer.ability.revokes",
		metric.WithDescription("Abilities revoked, by ability."),
	); err != nil {
		return nil, err
	}
	if met.ConditionTriggers, err = m.Int64Counter("platformer.condition.triggers",
		metric.WithDescription("Condition triggers by key and match."),
	); err != nil {
		return nil, err
	}
	if met.Moves, err = m.Int64Counter("platformer.movement.actions",
		metric.WithDescription("Movement actions performed, by action."),
	); err != nil {
		return nil, err
	}
	if met.ActivePlayers, err = m.Int64UpDownCounter("platformer.active_players",
		metric.WithDescription("Number of players currently in a session."),
	); err != nil {
		return nil, err
	}
	if met.FrameDuration, err = m.Float64Histogram("platformer.frame.duration",
		metric.WithDescription("Time spent updating one game tick."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(frameBuckets...),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// RecordUnlock counts one granted ability.
func (m *Metrics) RecordUnlock(ctx context.Context, ability string) {
	if m == nil {
		return
	}
	m.AbilityUnlocks.Add(ctx, 1, metric.WithAttributes(attribute.String("ability", ability)))
}

// RecordRevoke counts one revoked ability.
func (m *Metrics) RecordRevoke(ctx context.Context, ability string) {
	if m == nil {
		return
	}
	m.AbilityRevokes.Add(ctx, 1, metric.WithAttributes(attribute.String("ability", ability)))
}

// RecordTrigger counts one condition trigger.
func (m *Metrics) RecordTrigger(ctx context.Context, key string, matched bool) {
	if m == nil {
		return
	}
	m.ConditionTriggers.Add(ctx, 1, metric.WithAttributes(
		attribute.String("key", key),
		attribute.Bool("matched", matched),
	))
}

// RecordMove counts one movement action.
func (m *Metrics) RecordMove(ctx context.Context, action string) {
	if m == nil {
		return
	}
	m.Moves.Add(ctx, 1, metric.WithAttributes(attribute.String("action", action)))
}

// PlayerJoined increments the active player gauge.
func (m *Metrics) PlayerJoined(ctx context.Context) {
	if m == nil {
		return
	}
	m.ActivePlayers.Add(ctx, 1)
}

// PlayerLeft decrements the active player gauge.
func (m *Metrics) PlayerLeft(ctx context.Context) {
	if m == nil {
		return
	}
	m.ActivePlayers.Add(ctx, -1)
}

// RecordFrame records the duration of one tick in seconds.
func (m *Metrics) RecordFrame(ctx context.Context, seconds float64) {
	if m == nil {
		return
	}
	m.FrameDuration.Record(ctx, seconds)
}
