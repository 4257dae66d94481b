package gravity

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Params is a compile-time parameter family in Rust terms; Go has no
// const generics to monomorphize S/M/L into distinct types the way
// the original does, so this is one runtime value threaded through
// every operation the way the teacher threads its *Context (see
// DESIGN.md's Open Question on parameter families).
type Params struct {
	Name string
	Tau  uint32 // PORS tree height; T = 2^Tau secret leaves
	K    uint32 // PORS revealed indices per signature
	H    uint32 // subtree height
	D    uint32 // number of hypertree layers
	C    uint32 // cached top-level Merkle height
}

// Small, Medium and Large are the three named parameter families from
// spec.md's external-interface table.
func Small() Params  { return Params{Name: "S", Tau: 16, K: 24, H: 5, D: 1, C: 10} }
func Medium() Params { return Params{Name: "M", Tau: 16, K: 32, H: 5, D: 7, C: 15} }
func Large() Params  { return Params{Name: "L", Tau: 16, K: 28, H: 5, D: 10, C: 14} }

// Families lists the named parameter families, in the order spec.md
// presents them.
func Families() []Params { return []Params{Small(), Medium(), Large()} }

// FamilyByName looks up a family by its short name ("S", "M", "L").
func FamilyByName(name string) (Params, bool) {
	for _, p := range Families() {
		if p.Name == name {
			return p, true
		}
	}
	return Params{}, false
}

// Validate checks every invariant spec.md places on a parameter
// family, collecting every violation via go-multierror instead of
// stopping at the first -- useful when a hand-built custom family
// (not one of S/M/L) violates several constraints simultaneously.
func (p Params) Validate() error {
	var result *multierror.Error
	if p.Tau != porsTau {
		result = multierror.Append(result, fmt.Errorf("tau must be %d, got %d", porsTau, p.Tau))
	}
	if p.K == 0 {
		result = multierror.Append(result, fmt.Errorf("K must be > 0"))
	}
	if p.K > 1<<p.Tau {
		result = multierror.Append(result, fmt.Errorf("K (%d) exceeds 2^tau (%d)", p.K, uint64(1)<<p.Tau))
	}
	if p.H == 0 {
		result = multierror.Append(result, fmt.Errorf("H must be > 0"))
	}
	if p.D == 0 {
		result = multierror.Append(result, fmt.Errorf("D must be > 0"))
	}
	if p.C+p.H*p.D > 64 {
		result = multierror.Append(result, fmt.Errorf("C + H*D (%d) exceeds 64", p.C+p.H*p.D))
	}
	return result.ErrorOrNil()
}

// subtreeSigLen is the byte length of one subtree signature:
// wotsEll WOTS chain tops plus an H-long auth path.
func (p Params) subtreeSigLen() int { return wotsEll*32 + int(p.H)*32 }

// porsSigLen is the byte length of a PORS signature: pepper, K
// revealed leaves, and an octopus padded to its worst-case length.
func (p Params) porsSigLen() int { return 32 + int(p.K)*32 + int(p.K*p.Tau)*32 + 16 }

// SignatureLen is the fixed, parameter-family-determined length of a
// serialized Signature: the PORS signature, D subtree signatures, and
// a C-long cache auth path.
func (p Params) SignatureLen() int {
	return p.porsSigLen() + int(p.D)*p.subtreeSigLen() + int(p.C)*32
}
