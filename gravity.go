package gravity

import (
	"crypto/subtle"

	"github.com/bwesterb/byteswriter"
)

// PublicKey is the root of the key's cache Merkle tree: the single
// 32-byte value that authenticates every signature made with the
// corresponding SecKey.
type PublicKey [32]byte

// SecKey is a key's full private state: the seed that deterministically
// generates every secret leaf on demand, the salt mixed into
// per-message index derivation, and the cache -- a Merkle tree of
// height C over 2^C subtree public-key hashes, built once at key
// generation and otherwise immutable. A SecKey holds no other mutable
// state: this scheme is stateless, so there is no signature sequence
// number or forward-secure erasure to track (see SPEC_FULL.md).
type SecKey struct {
	Seed   Hash
	Salt   Hash
	Params Params

	prng  *Prng
	cache *MerkleTree
}

// Signature is the ordered, flat encoding of a gravity signature: a
// PORS signature, D subtree signatures, and a cache authentication
// path -- see Params.SignatureLen for its fixed per-family length.
type Signature struct {
	Pors     PorsSignature
	Subtrees []SubtreeSignature
	AuthC    []Hash
}

// GenerateKeyPair derives a SecKey and its PublicKey from 64 bytes of
// seed material: the first 32 bytes are the PRNG seed, the last 32
// are the salt. Cache construction -- 2^C subtree public-key
// derivations -- dominates the cost of this call.
func GenerateKeyPair(seed64 [64]byte, params Params) (*SecKey, PublicKey, Error) {
	if err := params.Validate(); err != nil {
		return nil, PublicKey{}, wrapErrorf(err, KindInvalidLength, "invalid parameter family")
	}
	var seed, salt Hash
	copy(seed[:], seed64[0:32])
	copy(salt[:], seed64[32:64])

	prng, err := NewPrng([32]byte(seed))
	if err != nil {
		return nil, PublicKey{}, wrapErrorf(err, KindInvalidLength, "expanding key seed")
	}

	n := uint32(1) << params.C
	roots := make([]Hash, n)
	for i := uint32(0); i < n; i++ {
		address := Address{Layer: 0, Instance: uint64(i) << params.H}
		roots[i] = subtreeGenRoot(prng, address, params.H)
	}
	log.Logf("gravity: built %d-leaf cache for family %s", n, params.Name)

	cache := NewMerkleTree(params.C, roots)
	cache.Generate()

	sk := &SecKey{Seed: seed, Salt: salt, Params: params, prng: prng, cache: cache}
	var pk PublicKey
	root := cache.Root()
	copy(pk[:], root[:])
	return sk, pk, nil
}

// SignDigest produces a signature over a caller-supplied 32-byte
// digest, skipping the internal SHA-256 reduction Sign performs.
func (sk *SecKey) SignDigest(digest Hash) Signature {
	p := sk.Params
	address, porsRoot, porsSig, err := porsSign(sk.prng, sk.Salt, digest, p.C, p.H, p.D, p.K)
	if err != nil {
		// porsSign only fails if NewPrng rejects a 32-byte seed,
		// which cannot happen: hash2NToN always yields 32 bytes.
		panic(err)
	}

	h := porsRoot
	subSigs := make([]SubtreeSignature, p.D)
	for i := uint32(0); i < p.D; i++ {
		address = address.NextLayer()
		root, sig := subtreeSign(sk.prng, address, p.H, h)
		subSigs[i] = sig
		h = root
		address = address.Shift(p.H)
	}

	authC := sk.cache.GenAuth(uint32(address.Instance))
	return Signature{Pors: porsSig, Subtrees: subSigs, AuthC: authC}
}

// Sign reduces msg to a 32-byte digest via SHA-256 and signs it.
func (sk *SecKey) Sign(msg []byte) Signature {
	return sk.SignDigest(longHash(msg))
}

// VerifyDigest checks sig against digest and pk, reporting the result
// as a plain bool per spec.md §7: every internal failure kind
// (malformed encoding, PORS/octopus reconstruction failure, root
// mismatch) collapses to false, and the final comparison is
// constant-time so a mismatching root does not leak which byte
// differed.
func VerifyDigest(pk PublicKey, digest Hash, sig Signature, params Params) bool {
	if uint32(len(sig.Subtrees)) != params.D || uint32(len(sig.AuthC)) != params.C {
		return false
	}
	address, porsRoot, err := porsExtract(sig.Pors, digest, params.C, params.H, params.D, params.K)
	if err != nil {
		return false
	}

	h := porsRoot
	for i := uint32(0); i < params.D; i++ {
		address = address.NextLayer()
		h = subtreeExtract(sig.Subtrees[i], address, params.H, h)
		address = address.Shift(params.H)
	}

	candidate, _ := merkleCompressAuth(h, sig.AuthC, uint32(address.Instance))
	return subtle.ConstantTimeCompare(candidate[:], pk[:]) == 1
}

// Verify reduces msg to a 32-byte digest via SHA-256 and checks sig
// against it.
func Verify(pk PublicKey, msg []byte, sig Signature, params Params) bool {
	return VerifyDigest(pk, longHash(msg), sig, params)
}

// Serialize encodes sig to its fixed, parameter-family-determined
// wire length: the PORS signature, then D subtree signatures, then
// the cache auth path.
func (sig Signature) Serialize(params Params) []byte {
	out := make([]byte, params.SignatureLen())
	w := byteswriter.NewWriter(out)
	porsBuf := make([]byte, params.porsSigLen())
	sig.Pors.serializeInto(porsBuf, params.K, params.Tau)
	w.Write(porsBuf)
	for _, s := range sig.Subtrees {
		buf := make([]byte, params.subtreeSigLen())
		s.serializeInto(buf)
		w.Write(buf)
	}
	for _, h := range sig.AuthC {
		w.Write(h[:])
	}
	return out
}

// DeserializeSignature parses buf into a Signature for the given
// parameter family, reporting KindInvalidLength if the length does
// not match and KindMalformedSignature if a structural check (octopus
// padding, octopus count) fails.
func DeserializeSignature(buf []byte, params Params) (Signature, Error) {
	want := params.SignatureLen()
	if len(buf) != want {
		return Signature{}, errorf(KindInvalidLength, "signature: expected %d bytes, got %d", want, len(buf))
	}

	off := 0
	porsLen := params.porsSigLen()
	pors, err := deserializePorsSignature(buf[off:off+porsLen], params.K, params.Tau)
	if err != nil {
		return Signature{}, err
	}
	off += porsLen

	subLen := params.subtreeSigLen()
	subSigs := make([]SubtreeSignature, params.D)
	for i := range subSigs {
		s, err := deserializeSubtreeSignature(buf[off:off+subLen], params.H)
		if err != nil {
			return Signature{}, err
		}
		subSigs[i] = s
		off += subLen
	}

	authC := make([]Hash, params.C)
	for i := range authC {
		copy(authC[i][:], buf[off:off+32])
		off += 32
	}

	return Signature{Pors: pors, Subtrees: subSigs, AuthC: authC}, nil
}
