// Package hasher provides the hash functions used to place keys and node
// replicas on the ring. A ring is correct with any Hash64 as long as the
// same function hashes both node identities and lookup keys.
package hasher
