package gravity

import "crypto/aes"

// Prng is a keyed AES-256 whose round keys are expanded once from a
// 32-byte seed and thereafter treated as immutable -- there is no
// shared mutable state across calls. AES-256 here is bit-identical
// standard AES-256 (see DESIGN.md), so this goes through crypto/aes
// directly rather than through the hand-rolled Haraka round function
// in primitives.go, which only exists because Haraka needs individual
// AES rounds at a granularity crypto/aes does not expose.
type Prng struct {
	block cipher256
}

// cipher256 is the subset of cipher.Block this package needs; kept as
// a named type so Prng doesn't leak the crypto/aes import to callers.
type cipher256 interface {
	Encrypt(dst, src []byte)
}

// NewPrng expands seed into cached AES-256 round keys.
func NewPrng(seed [32]byte) (*Prng, error) {
	block, err := aes.NewCipher(seed[:])
	if err != nil {
		return nil, wrapErrorf(err, KindInvalidLength, "expanding PRNG seed")
	}
	return &Prng{block: block}, nil
}

// GenBlock encrypts address.ToBlock(2c) and address.ToBlock(2c+1)
// under the cached key and concatenates the two 16-byte ciphertexts
// into a 32-byte output. The PRNG never mutates address; callers
// advance address state explicitly between calls.
func (p *Prng) GenBlock(address Address, counter uint32) Hash {
	var out Hash
	in0 := address.ToBlock(2 * counter)
	in1 := address.ToBlock(2*counter + 1)
	p.block.Encrypt(out[0:16], in0[:])
	p.block.Encrypt(out[16:32], in1[:])
	return out
}

// GenBlocks fills dst[i] = GenBlock(address, i) for i in [0, len(dst)).
func (p *Prng) GenBlocks(dst []Hash, address Address) {
	for i := range dst {
		dst[i] = p.GenBlock(address, uint32(i))
	}
}
