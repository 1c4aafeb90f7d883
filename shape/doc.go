// Package shape provides declarative structural descriptions of node
// input and output values. A Shape validates a candidate value, applying
// defaults and reporting violations, and shapes compose: Intersect builds
// the structural AND of two shapes so a merged value must conform to both.
package shape
