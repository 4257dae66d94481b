package gravity

import (
	"github.com/bwesterb/byteswriter"
)

// Octopus is the minimal set of sibling hashes needed to reconstruct
// a Merkle root from a sorted, deduplicated set of K leaf indices: a
// multi-path authentication that deduplicates sibling hashes already
// implied by the revealed leaf set.
type Octopus struct {
	Hashes []Hash
}

// genOctopus computes the octopus for the sorted, deduplicated leaf
// indices against the (already Generate()d) tree: at each level, scan
// index pairs; a sibling pair (indices[i+1] == indices[i]^1) needs no
// emitted hash since both children are already known; otherwise
// append the sibling's hash. Each group collapses to its parent
// index, halving the working set each level.
func genOctopus(tree *MerkleTree, indices []uint32) Octopus {
	width := uint32(1) << tree.Height
	idx := append([]uint32(nil), indices...)
	var octo []Hash
	for level := uint32(0); level < tree.Height; level++ {
		var parents []uint32
		i := 0
		for i < len(idx) {
			if i+1 < len(idx) && idx[i+1] == idx[i]^1 {
				parents = append(parents, idx[i]/2)
				i += 2
			} else {
				sibling := width + (idx[i] ^ 1)
				octo = append(octo, tree.Nodes[sibling])
				parents = append(parents, idx[i]/2)
				i += 1
			}
		}
		idx = parents
		width /= 2
	}
	return Octopus{Hashes: octo}
}

// compressOctopus reconstructs the root from the revealed leaf hashes
// (in ascending index order, matching indices) and the octopus,
// mirroring genOctopus's scan order: at each level, a sibling pair
// among the still-live indices is combined directly; any other
// element is combined with the next unconsumed octopus entry.
// Combination order (left/right argument to hash2NToN) follows the
// live index's parity. Fails if the octopus is shorter or longer than
// this scan consumes.
func compressOctopus(leaves []Hash, indices []uint32, octo Octopus, height uint32) (Hash, Error) {
	if len(leaves) != len(indices) {
		return Hash{}, errorf(KindInvalidSignature, "octopus leaf/index count mismatch")
	}
	type item struct {
		idx uint32
		h   Hash
	}
	items := make([]item, len(indices))
	for i := range indices {
		items[i] = item{indices[i], leaves[i]}
	}
	pos := 0
	for level := uint32(0); level < height; level++ {
		var next []item
		i := 0
		for i < len(items) {
			var combined Hash
			if i+1 < len(items) && items[i+1].idx == items[i].idx^1 {
				if items[i].idx&1 == 0 {
					combined = hash2NToN(items[i].h, items[i+1].h)
				} else {
					combined = hash2NToN(items[i+1].h, items[i].h)
				}
				next = append(next, item{items[i].idx / 2, combined})
				i += 2
				continue
			}
			if pos >= len(octo.Hashes) {
				return Hash{}, errorf(KindInvalidSignature, "octopus shorter than required")
			}
			sib := octo.Hashes[pos]
			pos++
			if items[i].idx&1 == 0 {
				combined = hash2NToN(items[i].h, sib)
			} else {
				combined = hash2NToN(sib, items[i].h)
			}
			next = append(next, item{items[i].idx / 2, combined})
			i++
		}
		items = next
	}
	if pos != len(octo.Hashes) {
		return Hash{}, errorf(KindInvalidSignature, "octopus longer than required")
	}
	return items[0].h, nil
}

// Serialize pads the octopus to its worst-case length k*tau (trailing
// hash slots zeroed), followed by a 4-byte little-endian count and 12
// zero bytes, so a serialized octopus has a fixed length regardless
// of message: this prevents a length side-channel.
func (o Octopus) Serialize(k, tau uint32) []byte {
	worst := k * tau
	out := make([]byte, worst*32+16)
	w := byteswriter.NewWriter(out)
	for i := uint32(0); i < worst; i++ {
		if i < uint32(len(o.Hashes)) {
			w.Write(o.Hashes[i][:])
		} else {
			var zero [32]byte
			w.Write(zero[:])
		}
	}
	var countBuf [4]byte
	countBuf[0] = byte(len(o.Hashes))
	countBuf[1] = byte(len(o.Hashes) >> 8)
	countBuf[2] = byte(len(o.Hashes) >> 16)
	countBuf[3] = byte(len(o.Hashes) >> 24)
	w.Write(countBuf[:])
	var zeros [12]byte
	w.Write(zeros[:])
	return out
}

// DeserializeOctopus validates that the trailing padding is all-zero
// and that the declared count does not exceed k*tau, then returns the
// live (non-padding) hashes.
func DeserializeOctopus(in []byte, k, tau uint32) (Octopus, Error) {
	worst := k * tau
	want := int(worst)*32 + 16
	if len(in) != want {
		return Octopus{}, errorf(KindInvalidLength, "octopus: expected %d bytes, got %d", want, len(in))
	}
	countBuf := in[worst*32 : worst*32+4]
	count := uint32(countBuf[0]) | uint32(countBuf[1])<<8 | uint32(countBuf[2])<<16 | uint32(countBuf[3])<<24
	if count > worst {
		return Octopus{}, errorf(KindMalformedSignature, "octopus count %d exceeds worst case %d", count, worst)
	}
	for _, b := range in[worst*32+4:] {
		if b != 0 {
			return Octopus{}, errorf(KindMalformedSignature, "octopus trailer is not zero-padded")
		}
	}
	for i := count; i < worst; i++ {
		for _, b := range in[i*32 : i*32+32] {
			if b != 0 {
				return Octopus{}, errorf(KindMalformedSignature, "octopus padding slot %d is not zero", i)
			}
		}
	}
	hashes := make([]Hash, count)
	for i := uint32(0); i < count; i++ {
		copy(hashes[i][:], in[i*32:i*32+32])
	}
	return Octopus{Hashes: hashes}, nil
}
