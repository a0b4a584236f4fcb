// Package stepper turns a step generator into an observable, controllable
// animation.
//
//   - [Scheduler]: timer-driven runs with start, stop, skip and reset
//   - [Runner]: synchronous, unpaced runs for the CLI, benchmarks and tests
//   - [Clock]: deferred callbacks; [ManualClock] fires them on demand
//
// # Concurrency
//
// All stepping is cooperative. The scheduler keeps at most one deferred
// tick outstanding and every control operation cancels it first, so two
// ticks never touch the working array at once. Nothing blocks the caller;
// waiting is expressed only as scheduling the next tick.
//
// Collaborators are called with the scheduler lock held. A sink that feeds
// an event loop should hand control commands back asynchronously (for
// Bubble Tea, from a tea.Cmd) rather than from inside Render.
package stepper
