// Package model holds the extracted representation of a program: symbolic
// variable tables, guarded traces through loops and functions, and the
// blocks and loops those traces step through.
//
// A trace is live until it is frozen. Loop traces freeze when they leave the
// loop (break, return or a failed loop test); function traces freeze when
// they return. Frozen traces are kept for output but never updated again.
package model
