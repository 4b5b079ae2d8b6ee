package hook

import (
	"context"
)

type tap[F any] struct {
	pluginID string
	fn       F
}

// Waterfall is a stage whose handlers each transform the previous output.
type Waterfall[T any] struct {
	name string
	taps []tap[func(context.Context, T) (T, error)]
}

// NewWaterfall returns an empty waterfall stage.
func NewWaterfall[T any](name string) *Waterfall[T] {
	return &Waterfall[T]{name: name}
}

// Name returns the stage name.
func (w *Waterfall[T]) Name() string { return w.name }

// Len returns the number of registered handlers.
func (w *Waterfall[T]) Len() int { return len(w.taps) }

// Tap appends a handler registered by pluginID.
func (w *Waterfall[T]) Tap(pluginID string, fn func(context.Context, T) (T, error)) {
	w.taps = append(w.taps, tap[func(context.Context, T) (T, error)]{pluginID: pluginID, fn: fn})
}

// Call runs the handlers in order and returns the last output. With no
// handlers the input is returned unchanged.
func (w *Waterfall[T]) Call(ctx context.Context, in T) (T, error) {
	cur := in
	for _, t := range w.taps {
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, attribute(w.name, t.pluginID, err)
		}
		out, err := t.fn(ctx, cur)
		if err != nil {
			var zero T
			return zero, attribute(w.name, t.pluginID, err)
		}
		cur = out
	}
	return cur, nil
}

// Series is a stage whose handlers all receive the same input.
type Series[T any] struct {
	name string
	taps []tap[func(context.Context, T) error]
}

// NewSeries returns an empty series stage.
func NewSeries[T any](name string) *Series[T] {
	return &Series[T]{name: name}
}

// Name returns the stage name.
func (s *Series[T]) Name() string { return s.name }

// Len returns the number of registered handlers.
func (s *Series[T]) Len() int { return len(s.taps) }

// Tap appends a handler registered by pluginID.
func (s *Series[T]) Tap(pluginID string, fn func(context.Context, T) error) {
	s.taps = append(s.taps, tap[func(context.Context, T) error]{pluginID: pluginID, fn: fn})
}

// Call runs every handler on in, stopping at the first failure.
func (s *Series[T]) Call(ctx context.Context, in T) error {
	for _, t := range s.taps {
		if err := ctx.Err(); err != nil {
			return attribute(s.name, t.pluginID, err)
		}
		if err := t.fn(ctx, in); err != nil {
			return attribute(s.name, t.pluginID, err)
		}
	}
	return nil
}
