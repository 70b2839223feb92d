// Package hashring implements a consistent hashing ring with virtual nodes.
// It maps 64-bit key hashes to physical nodes while keeping key movement
// small when membership changes: adding or removing a node remaps only the
// hash ranges adjacent to that node's replicas, not the whole key space.
package hashring
