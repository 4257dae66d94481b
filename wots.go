package gravity

const (
	wotsW       = 16 // Winternitz parameter
	wotsLogW    = 4
	wotsEll1    = 64 // chains carrying the message nibbles
	wotsChksum  = 3  // chains carrying the checksum
	wotsEll     = wotsEll1 + wotsChksum
	wotsMaxStep = wotsW - 1
)

// wotsSplitMsg splits a 32-byte digest into wotsEll base-16 digits:
// the 64 nibbles of m (high nibble then low nibble of each byte),
// followed by a 3-digit checksum (least-significant digit first) of
// Sum(wotsW-1-digit) over those 64 digits.
func wotsSplitMsg(m Hash) [wotsEll]uint8 {
	var digits [wotsEll]uint8
	var checksum uint32
	for i, b := range m {
		hi := b >> 4
		lo := b & 0x0f
		digits[2*i] = hi
		digits[2*i+1] = lo
		checksum += uint32(wotsMaxStep-hi) + uint32(wotsMaxStep-lo)
	}
	for i := 0; i < wotsChksum; i++ {
		digits[wotsEll1+i] = uint8(checksum & 0x0f)
		checksum >>= 4
	}
	return digits
}

// wotsGenSecretKey derives the wotsEll secret chain-starts for address
// from the PRNG in a single GenBlocks call.
func wotsGenSecretKey(prng *Prng, address Address) [wotsEll]Hash {
	var sk [wotsEll]Hash
	prng.GenBlocks(sk[:], address)
	return sk
}

// wotsPkGen derives the WOTS public key: every chain is walked to its
// tip (wotsW-1 applications of hashNToN), then the tips are
// compressed with an L-tree.
func wotsPkGen(sk [wotsEll]Hash) Hash {
	tips := sk
	hashParallelChains(tips[:], wotsMaxStep)
	buf := append([]Hash(nil), tips[:]...)
	return lTree(buf)
}

// wotsSign walks each chain to the position given by the
// corresponding digit of m.
func wotsSign(sk [wotsEll]Hash, m Hash) [wotsEll]Hash {
	digits := wotsSplitMsg(m)
	var sig [wotsEll]Hash
	for i := range sk {
		sig[i] = hashNToNChain(sk[i], uint32(digits[i]))
	}
	return sig
}

// wotsPkFromSig recomputes the candidate public key from a signature
// and the message it was claimed to sign, by completing each chain
// from the revealed position to its tip.
func wotsPkFromSig(sig [wotsEll]Hash, m Hash) Hash {
	digits := wotsSplitMsg(m)
	var tips [wotsEll]Hash
	for i := range sig {
		tips[i] = hashNToNChain(sig[i], uint32(wotsMaxStep-int(digits[i])))
	}
	buf := append([]Hash(nil), tips[:]...)
	return lTree(buf)
}
