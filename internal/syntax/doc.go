// Package syntax defines the expression and statement trees consumed by the
// extraction driver. Front-ends lower their own parse trees into this form.
//
// Expressions are immutable values: rewriting produces new trees that share
// the untouched subtrees of the original.
package syntax
