package gravity

import "testing"

// Ported from original_source/src/ltree.rs's worked compositions
// (notation there: H(h_i, h_j) = h_{2^i * 3^j}). These assert the
// pairwise-compress-with-orphan-carry-up policy structurally, via our
// own hashNToN/hash2NToN, rather than against literal bytes that
// depend on the (unavailable) published round-constant table.

func ltreeTestH0() Hash {
	var h0 Hash
	for i := range h0 {
		h0[i] = byte(i)
	}
	return h0
}

func TestLTreeSingleLeaf(t *testing.T) {
	h0 := ltreeTestH0()
	got := lTree([]Hash{h0})
	if got != h0 {
		t.Fatalf("lTree of a single leaf must return that leaf unchanged")
	}
}

func TestLTreeTwoLeaves(t *testing.T) {
	h0 := ltreeTestH0()
	h1 := hash2NToN(h0, h0)
	got := lTree([]Hash{h0, h0})
	if got != h1 {
		t.Fatalf("lTree of two leaves must be hash2NToN(leaf, leaf)")
	}
}

func TestLTreeThreeLeavesOrphanCarry(t *testing.T) {
	h0 := ltreeTestH0()
	h1 := hash2NToN(h0, h0)
	h2 := hash2NToN(h1, h0)
	got := lTree([]Hash{h0, h0, h0})
	if got != h2 {
		t.Fatalf("lTree of three leaves must carry the orphan unhashed into the next round")
	}
}

func TestLTreeFourLeaves(t *testing.T) {
	h0 := ltreeTestH0()
	h1 := hash2NToN(h0, h0)
	h6 := hash2NToN(h1, h1)
	got := lTree([]Hash{h0, h0, h0, h0})
	if got != h6 {
		t.Fatalf("lTree of four leaves must be a balanced 2-level compression")
	}
}

func TestLTreeFiveLeaves(t *testing.T) {
	h0 := ltreeTestH0()
	h1 := hash2NToN(h0, h0)
	h6 := hash2NToN(h1, h1)
	h64 := hash2NToN(h6, h0)
	got := lTree([]Hash{h0, h0, h0, h0, h0})
	if got != h64 {
		t.Fatalf("lTree of five leaves mismatched expected carry pattern")
	}
}

func TestLTreeSixLeaves(t *testing.T) {
	h0 := ltreeTestH0()
	h1 := hash2NToN(h0, h0)
	h6 := hash2NToN(h1, h1)
	h192 := hash2NToN(h6, h1)
	got := lTree([]Hash{h0, h0, h0, h0, h0, h0})
	if got != h192 {
		t.Fatalf("lTree of six leaves mismatched expected carry pattern")
	}
}
