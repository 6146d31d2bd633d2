package world

import (
	"github.com/cnf/structhash"
)

// Hash returns a content hash of w's entire state (root tree plus PRNG
// state). It is grounded directly on the teacher's own use of structhash
// in github.com/npillmayer/gorgo/lr/earley (its hash() helper, which hashes
// an anonymous struct wrapping an Earley item and a state number to dedupe
// item sets): here we hash an anonymous struct wrapping the world's
// serialized snapshot and its PRNG state, giving tests and the harness
// package a cheap determinism check that's stronger than pointer equality
// and cheaper than a deep structural diff.
func Hash(w World) string {
	snap, err := Serialize(w)
	if err != nil {
		// Serialize only fails if a Value implementation is malformed;
		// that's a programming error in this package, not a runtime one.
		panic(err)
	}
	h, err := structhash.Hash(struct {
		Snapshot []byte
		Seed     int64
	}{Snapshot: snap, Seed: w.Seed()}, 1)
	if err != nil {
		panic(err)
	}
	return h
}
