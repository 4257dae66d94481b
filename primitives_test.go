package gravity

import "testing"

// These primitives' exact output bytes depend on a round-constant
// table the retrieved reference material never defined (see
// DESIGN.md); what is tested here is what does not depend on that
// table: determinism, that the hash actually mixes its input (not an
// identity or a fixed point), and that the two input slots of
// hash2NToN are not interchangeable (order matters, as required by
// the WOTS/Merkle compression layers above it).

func TestHashNToNDeterministic(t *testing.T) {
	var x Hash
	for i := range x {
		x[i] = byte(i)
	}
	a := hashNToN(x)
	b := hashNToN(x)
	if a != b {
		t.Fatalf("hashNToN is not deterministic")
	}
	if a == x {
		t.Fatalf("hashNToN must not be the identity function")
	}
}

func Test2NToNOrderMatters(t *testing.T) {
	var x, y Hash
	for i := range x {
		x[i] = byte(i)
		y[i] = byte(i + 1)
	}
	a := hash2NToN(x, y)
	b := hash2NToN(y, x)
	if a == b {
		t.Fatalf("hash2NToN(x, y) must differ from hash2NToN(y, x)")
	}
}

func TestHashNToNChain(t *testing.T) {
	var x Hash
	x[0] = 1
	chained := hashNToNChain(x, 3)
	manual := hashNToN(hashNToN(hashNToN(x)))
	if chained != manual {
		t.Fatalf("hashNToNChain(x, 3) != hashNToN(hashNToN(hashNToN(x)))")
	}
	if hashNToNChain(x, 0) != x {
		t.Fatalf("hashNToNChain(x, 0) must return x unchanged")
	}
}

func TestHashParallelChainsRowMajor(t *testing.T) {
	// Row-major (breadth-first) advancement must yield the same
	// final contents as advancing each chain independently to the
	// same depth -- the mandated evaluation order only constrains
	// intermediate scheduling, not the final per-chain result.
	buf := make([]Hash, 4)
	for i := range buf {
		buf[i][0] = byte(i)
	}
	want := make([]Hash, len(buf))
	for i := range buf {
		want[i] = hashNToNChain(buf[i], 5)
	}
	got := append([]Hash(nil), buf...)
	hashParallelChains(got, 5)
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("hashParallelChains[%d] = %x, want %x", i, got[i], want[i])
		}
	}
}

func TestLongHashIsSHA256(t *testing.T) {
	// long_hash is specified to be plain SHA-256; the all-zero
	// 32-byte SHA-256 digest is a well-known, independently
	// verifiable constant, unlike anything passing through Haraka.
	zero := make([]byte, 32)
	got := longHash(zero)
	want := "66687aadf862bd776c8fc18b8e9f8e20089714856ee233b3902a591d0d5f2925"
	gotHex := hashToHex(got)
	if gotHex != want {
		t.Fatalf("longHash(zero32) = %s, want %s", gotHex, want)
	}
}

func hashToHex(h Hash) string {
	const hexdigits = "0123456789abcdef"
	out := make([]byte, 64)
	for i, b := range h {
		out[2*i] = hexdigits[b>>4]
		out[2*i+1] = hexdigits[b&0xf]
	}
	return string(out)
}
