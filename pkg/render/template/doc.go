// Package template defines the renderer-agnostic template contract that
// template-backed renderers depend on, so the engine behind them can be
// swapped or faked in tests.
package template
