// Package algorithms implements the five step generators: bubble,
// insertion, selection, merge and quick sort.
//
// Each generator is a resumable cursor over the array. Merge and quick sort
// replace recursion with an explicit stack of pending ranges, processed
// depth-first in the order the recursive calls would run, so the observable
// step order matches the recursive formulation.
package algorithms
