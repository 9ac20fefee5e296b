// Package runtime runs the page behaviour as a single-threaded actor.
//
// A host (a browser bridge, a test, a replay tool) feeds discrete input
// events into a Loop and applies the commands it emits. All state lives on
// the loop goroutine; the only work done elsewhere is the network call of a
// contact form submission, whose result comes back as an event.
package runtime
