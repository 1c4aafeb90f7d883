// Package node defines the uniform contract every workflow unit presents:
// a named, typed Definition with declared input and output shapes and an
// executor function. Definitions compose through middleware transforms
// that always produce a new Definition; WithRetry is the canonical one,
// wrapping any node with transparent exponential-backoff retry.
package node
