// Package tracker decides which page section is "current" for a given scroll
// position and keeps the navigation links' active flags in sync with it.
//
// Recomputation is coalesced to at most one pass per animation frame by a
// Coalescer; the selection itself is a pure function over section geometry.
package tracker
