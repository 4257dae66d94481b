package gravity

import "sort"

// porsTau is the PORS tree height: T = 2^porsTau secret leaves.
const porsTau = 16

// PorsSignature is a PRNG-based one-time random-subset few-time
// signature: a pepper binding the signature to the message, the K
// revealed secret leaves, and an octopus authenticating them against
// the PORS tree root.
type PorsSignature struct {
	Pepper Hash
	Leaves []Hash
	Octo   Octopus
}

// gravityMask returns (1<<bits)-1. Go defines shift counts >= the
// operand's width to yield 0 (unlike C, where this would be
// undefined), so 1<<64 correctly evaluates to 0 here and the
// subsequent "-1" wraps to all-ones -- exactly the mask wanted when
// C+h*D == 64, with no special-casing required.
func gravityMask(bits uint32) uint64 {
	return uint64(1)<<bits - 1
}

// obtainAddressSubset deterministically derives the hypertree leaf
// address and the K distinct PORS indices a signature over msg will
// use, given the per-message pepper.
func obtainAddressSubset(pepper, msg Hash, c, h, d, k uint32) (Address, []uint32, Error) {
	seed := hash2NToN(pepper, msg)
	prng, err := NewPrng([32]byte(seed))
	if err != nil {
		return Address{}, nil, wrapErrorf(err, KindInvalidLength, "deriving PORS index-selection PRNG")
	}

	first := prng.GenBlock(Address{}, 0)
	mask := gravityMask(c + h*d)
	instance := getUint64BE(first[24:32]) & mask

	indices := make([]uint32, 0, k)
	seen := make(map[uint32]bool, k)
	t := uint32(1) << porsTau
	for counter := uint32(1); uint32(len(indices)) < k; counter++ {
		block := prng.GenBlock(Address{}, counter)
		for w := 0; w < 8 && uint32(len(indices)) < k; w++ {
			candidate := getUint32BE(block[w*4:w*4+4]) % t
			if !seen[candidate] {
				seen[candidate] = true
				indices = append(indices, candidate)
			}
		}
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	return Address{Layer: d, Instance: instance}, indices, nil
}

// porsSign derives the pepper, the selected indices, and the T secret
// PORS leaves from prng (the key's main PRNG) keyed at the chosen
// hypertree address, reveals the K selected leaves, and authenticates
// them with an octopus over the height-porsTau tree of hashed leaves.
func porsSign(prng *Prng, salt, msg Hash, c, h, d, k uint32) (Address, Hash, PorsSignature, Error) {
	pepper := hash2NToN(salt, msg)
	address, indices, err := obtainAddressSubset(pepper, msg, c, h, d, k)
	if err != nil {
		return Address{}, Hash{}, PorsSignature{}, err
	}

	t := uint32(1) << porsTau
	secrets := make([]Hash, t)
	prng.GenBlocks(secrets, address)

	revealed := make([]Hash, k)
	for i, idx := range indices {
		revealed[i] = secrets[idx]
	}

	leaves := make([]Hash, t)
	hashParallel(leaves, secrets)
	tree := NewMerkleTree(porsTau, leaves)
	tree.Generate()
	octo := genOctopus(tree, indices)

	return address, tree.Root(), PorsSignature{Pepper: pepper, Leaves: revealed, Octo: octo}, nil
}

// porsExtract recomputes the selection indices from the signature's
// pepper and msg, hashes the revealed leaves, and reconstructs the
// PORS root via the octopus. It reports KindInvalidSignature if the
// octopus does not reconstruct.
func porsExtract(sig PorsSignature, msg Hash, c, h, d, k uint32) (Address, Hash, Error) {
	address, indices, err := obtainAddressSubset(sig.Pepper, msg, c, h, d, k)
	if err != nil {
		return Address{}, Hash{}, err
	}
	if uint32(len(sig.Leaves)) != k || uint32(len(indices)) != k {
		return Address{}, Hash{}, errorf(KindInvalidSignature, "PORS signature does not carry K leaves")
	}
	leafHashes := make([]Hash, k)
	hashParallel(leafHashes, sig.Leaves)
	root, err := compressOctopus(leafHashes, indices, sig.Octo, porsTau)
	if err != nil {
		return Address{}, Hash{}, err
	}
	return address, root, nil
}

func (sig PorsSignature) serializeInto(buf []byte, k, tau uint32) {
	off := 0
	copy(buf[off:off+32], sig.Pepper[:])
	off += 32
	for i := range sig.Leaves {
		copy(buf[off:off+32], sig.Leaves[i][:])
		off += 32
	}
	copy(buf[off:], sig.Octo.Serialize(k, tau))
}

func deserializePorsSignature(buf []byte, k, tau uint32) (PorsSignature, Error) {
	want := 32 + int(k)*32 + int(k*tau)*32 + 16
	if len(buf) != want {
		return PorsSignature{}, errorf(KindInvalidLength, "PORS signature: expected %d bytes, got %d", want, len(buf))
	}
	var sig PorsSignature
	off := 0
	copy(sig.Pepper[:], buf[off:off+32])
	off += 32
	sig.Leaves = make([]Hash, k)
	for i := range sig.Leaves {
		copy(sig.Leaves[i][:], buf[off:off+32])
		off += 32
	}
	octo, err := DeserializeOctopus(buf[off:], k, tau)
	if err != nil {
		return PorsSignature{}, err
	}
	sig.Octo = octo
	return sig, nil
}
