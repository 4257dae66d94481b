package gravity

// MerkleTree is a full binary tree of height h stored as an implicit
// 1-based heap of 2*2^h nodes: the root is at index 1, leaves occupy
// indices [2^h, 2*2^h). Nodes[0] is unused.
type MerkleTree struct {
	Height uint32
	Nodes  []Hash
}

// NewMerkleTree allocates a tree of the given height with its leaves
// set to leaves (len(leaves) must equal 2^height).
func NewMerkleTree(height uint32, leaves []Hash) *MerkleTree {
	n := uint32(1) << height
	nodes := make([]Hash, 2*n)
	copy(nodes[n:2*n], leaves)
	return &MerkleTree{Height: height, Nodes: nodes}
}

// Generate fills every parent node bottom-up via pairwise
// hash2NToN compression.
func (t *MerkleTree) Generate() {
	n := uint32(1) << t.Height
	for width := n / 2; width >= 1; width /= 2 {
		hashCompressPairs(t.Nodes[width:2*width], t.Nodes[2*width:4*width])
		if width == 1 {
			break
		}
	}
}

// Root returns the tree's root hash; valid after Generate.
func (t *MerkleTree) Root() Hash {
	return t.Nodes[1]
}

// GenAuth returns the h siblings on the path from the indexed leaf to
// the root, in leaf-to-root order.
func (t *MerkleTree) GenAuth(index uint32) []Hash {
	auth := make([]Hash, t.Height)
	n := uint32(1) << t.Height
	node := n + index
	for l := uint32(0); l < t.Height; l++ {
		sibling := node ^ 1
		auth[l] = t.Nodes[sibling]
		node /= 2
	}
	return auth
}

// merkleCompressAuth repeatedly combines node with auth[l] via
// hash2NToN, choosing order by bit l of index (bit 0: node is the
// left argument and auth is the right; bit 1: reversed). It returns
// the combined node and the residual index shifted right by len(auth)
// bits, as used when climbing further cache levels above this
// authentication path.
func merkleCompressAuth(node Hash, auth []Hash, index uint32) (Hash, uint32) {
	for l := 0; l < len(auth); l++ {
		if (index>>uint(l))&1 == 0 {
			node = hash2NToN(node, auth[l])
		} else {
			node = hash2NToN(auth[l], node)
		}
	}
	return node, index >> uint(len(auth))
}
