package gravity

// SubtreeSignature authenticates one message against the root of a
// Merkle tree of WOTS public keys: the WOTS signature of the message
// under the selected leaf, plus the auth path from that leaf to the
// subtree root.
type SubtreeSignature struct {
	Wots [wotsEll]Hash
	Auth []Hash
}

// subtreeGenLeaf derives the WOTS public key at a given leaf address.
func subtreeGenLeaf(prng *Prng, leafAddr Address) Hash {
	sk := wotsGenSecretKey(prng, leafAddr)
	return wotsPkGen(sk)
}

// subtreeGenRoot builds every WOTS public key of the height-h subtree
// rooted at address (assumed already aligned, i.e. address.Instance is
// a multiple of 2^h) and returns the subtree's Merkle root, without
// producing any signature. Used at key-generation time to build the
// cache's 2^C subtree roots.
func subtreeGenRoot(prng *Prng, address Address, h uint32) Hash {
	n := uint32(1) << h
	leaves := make([]Hash, n)
	for j := uint32(0); j < n; j++ {
		leafAddr := address
		leafAddr.Instance += uint64(j)
		leaves[j] = subtreeGenLeaf(prng, leafAddr)
	}
	tree := NewMerkleTree(h, leaves)
	tree.Generate()
	return tree.Root()
}

// subtreeSign normalizes address to a height-h subtree, regenerates
// every one of its 2^h WOTS public keys (the dominant per-signature
// cost for the larger parameter families), signs msg under the
// selected leaf, and authenticates it with a Merkle auth path.
func subtreeSign(prng *Prng, address Address, h uint32, msg Hash) (root Hash, sig SubtreeSignature) {
	index, base := address.NormalizeIndex(h)
	n := uint32(1) << h
	leaves := make([]Hash, n)
	var selectedSk [wotsEll]Hash
	for j := uint32(0); j < n; j++ {
		leafAddr := base
		leafAddr.Instance += uint64(j)
		sk := wotsGenSecretKey(prng, leafAddr)
		leaves[j] = wotsPkGen(sk)
		if j == index {
			selectedSk = sk
		}
	}
	tree := NewMerkleTree(h, leaves)
	tree.Generate()
	auth := tree.GenAuth(index)
	return tree.Root(), SubtreeSignature{Wots: wotsSign(selectedSk, msg), Auth: auth}
}

// subtreeExtract recomputes the WOTS public-key candidate from sig
// and msg, then combines it with the auth path to yield a candidate
// subtree root.
func subtreeExtract(sig SubtreeSignature, address Address, h uint32, msg Hash) Hash {
	index, _ := address.NormalizeIndex(h)
	pkCandidate := wotsPkFromSig(sig.Wots, msg)
	root, _ := merkleCompressAuth(pkCandidate, sig.Auth, index)
	return root
}

func (sig SubtreeSignature) serializeInto(buf []byte) {
	off := 0
	for i := range sig.Wots {
		copy(buf[off:off+32], sig.Wots[i][:])
		off += 32
	}
	for i := range sig.Auth {
		copy(buf[off:off+32], sig.Auth[i][:])
		off += 32
	}
}

func deserializeSubtreeSignature(buf []byte, h uint32) (SubtreeSignature, Error) {
	want := int(wotsEll)*32 + int(h)*32
	if len(buf) != want {
		return SubtreeSignature{}, errorf(KindInvalidLength, "subtree signature: expected %d bytes, got %d", want, len(buf))
	}
	var sig SubtreeSignature
	off := 0
	for i := range sig.Wots {
		copy(sig.Wots[i][:], buf[off:off+32])
		off += 32
	}
	sig.Auth = make([]Hash, h)
	for i := range sig.Auth {
		copy(sig.Auth[i][:], buf[off:off+32])
		off += 32
	}
	return sig, nil
}
