// Package kernel holds the primitives shared by every aggregate of the dispatch domain:
// the UUID identifier value object and the clock / timestamp helpers.
//
// All values are immutable and safe for concurrent use.
package kernel
