// Package sink delivers encoded events to their destinations: console,
// rotating file, HTTP collector, or websocket collector. Every sink
// receives the complete bytes of one event per Write and owns its own
// batching and framing.
package sink
