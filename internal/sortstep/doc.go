// Package sortstep defines the vocabulary shared by the animated sort engine.
//
// A sort is expressed as a sequence of discrete steps rather than a single
// call:
//
//   - [Array]: the working list of elements, each in [MinValue, MaxValue]
//   - [Step]: one atomic unit of progress (compare, swap, overwrite,
//     structural marker or done)
//   - [Generator]: a resumable policy that produces the next [Step]
//     from the current array and its own cursor
//
// # Example
//
//	gen := algorithms.NewBubble(narrate.English())
//	a := sortstep.Array{5, 1, 4, 2, 8}
//	for {
//		step := gen.Next(a.Clone())
//		if err := step.Apply(a); err != nil {
//			return err
//		}
//		if step.Kind == sortstep.KindDone {
//			break
//		}
//	}
//
// # Thread Safety
//
// Generators are NOT thread-safe. The stepper package guarantees that at
// most one tick drives a generator at any instant.
package sortstep
