package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/soundpairs/internal/game"
)

// RoundTracer records one span per round. It is driven by board hooks and
// so runs on the board's thread only.
type RoundTracer struct {
	tracer trace.Tracer
	rows   int
	cols   int
	span   trace.Span
}

// NewRoundTracer creates a tracer for a rows x cols board.
func NewRoundTracer(tracer trace.Tracer, rows, cols int) *RoundTracer {
	return &RoundTracer{tracer: tracer, rows: rows, cols: cols}
}

// Hooks returns board hooks feeding this tracer.
func (t *RoundTracer) Hooks() game.Hooks {
	return game.Hooks{
		OnReset:   t.startRound,
		OnOpen:    t.cardOpened,
		OnResolve: t.pairResolved,
		OnFinish:  t.roundFinished,
	}
}

// Close ends a round still in progress as abandoned.
func (t *RoundTracer) Close() {
	t.abandon()
}

func (t *RoundTracer) startRound(round int) {
	t.abandon()
	_, t.span = t.tracer.Start(context.Background(), "round",
		trace.WithAttributes(
			attribute.Int("round", round),
			attribute.Int("board.rows", t.rows),
			attribute.Int("board.cols", t.cols),
		),
	)
}

func (t *RoundTracer) cardOpened(c *game.Card) {
	if t.span == nil {
		return
	}
	t.span.AddEvent("card.opened", trace.WithAttributes(
		attribute.Int("card.row", c.Position().Row),
		attribute.Int("card.col", c.Position().Col),
		attribute.String("sound", c.Sound().Name),
		attribute.Int64("sound.duration_ms", c.Sound().Duration.Milliseconds()),
	))
}

func (t *RoundTracer) pairResolved(r game.Resolution) {
	if t.span == nil {
		return
	}
	t.span.AddEvent("pair.resolved", trace.WithAttributes(
		attribute.Bool("matched", r.Matched),
		attribute.String("first", r.First.String()),
		attribute.String("second", r.Second.String()),
		attribute.Int("score", r.Score),
	))
}

func (t *RoundTracer) roundFinished(r game.Result) {
	if t.span == nil {
		return
	}
	t.span.SetAttributes(
		attribute.Int("score", r.Score),
		attribute.Int("matches", r.Matches),
		attribute.Int("mismatches", r.Mismatches),
		attribute.Int64("duration_ms", r.Duration().Milliseconds()),
	)
	t.span.SetStatus(codes.Ok, "finished")
	t.span.End()
	t.span = nil
}

func (t *RoundTracer) abandon() {
	if t.span == nil {
		return
	}
	t.span.SetAttributes(attribute.Bool("abandoned", true))
	t.span.End()
	t.span = nil
}
