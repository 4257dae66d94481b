package gravity

import "crypto/sha256"

// Hash is a fixed 32-byte opaque digest value; every intermediate
// cryptographic value in this scheme shares this type.
type Hash [32]byte

// hashNToN is Haraka-256, 6 rounds.
func hashNToN(x Hash) Hash {
	return Hash(harakaN256([32]byte(x)))
}

// hash2NToN is Haraka-512, 6 rounds.
func hash2NToN(x, y Hash) Hash {
	var in [64]byte
	copy(in[0:32], x[:])
	copy(in[32:64], y[:])
	return Hash(haraka2n256(in))
}

// hashNToNChain applies hashNToN k times.
func hashNToNChain(x Hash, k uint32) Hash {
	for i := uint32(0); i < k; i++ {
		x = hashNToN(x)
	}
	return x
}

// hashParallel sets dst[i] = hashNToN(src[i]) for every element.
func hashParallel(dst, src []Hash) {
	for i := range src {
		dst[i] = hashNToN(src[i])
	}
}

// hashParallelChains advances every element of buf by k applications
// of hashNToN, materialized row-by-row: all elements advance one step
// before any advances two. This ordering is mandatory -- known-answer
// vectors and the WOTS public-key derivation depend on it, even
// though the final contents would be identical under a column-major
// (chain-at-a-time) evaluation for this particular primitive. An
// implementation that parallelizes this loop must still complete
// step s for every chain before starting step s+1 for any of them.
func hashParallelChains(buf []Hash, k uint32) {
	for step := uint32(0); step < k; step++ {
		for i := range buf {
			buf[i] = hashNToN(buf[i])
		}
	}
}

// hashCompressPairs sets dst[i] = hash2NToN(src[2i], src[2i+1]).
func hashCompressPairs(dst, src []Hash) {
	for i := range dst {
		dst[i] = hash2NToN(src[2*i], src[2*i+1])
	}
}

// longHash is SHA-256, used solely to reduce an arbitrary-length
// message to a 32-byte digest before PORS index derivation.
func longHash(msg []byte) Hash {
	return Hash(sha256.Sum256(msg))
}
