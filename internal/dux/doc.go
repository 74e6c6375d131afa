// Package dux implements filesystem traversal and size aggregation.
//
// Every node is classified by its own link metadata: symbolic links are
// reported as entries but never followed, at any depth. Descent uses an
// explicit work stack, so arbitrarily deep trees cannot exhaust the call
// stack, while the depth-first pre-order of results is preserved.
package dux
