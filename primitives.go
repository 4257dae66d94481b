package gravity

import "github.com/templexxx/xor"

// This file holds the primitives spec.md declares out of scope beyond
// their interfaces: a raw AES round function (needed because
// Haraka's permutation applies individual AES rounds, a granularity
// crypto/aes does not expose), and the Haraka-256/512 6-round
// short-input hashes built from it. AES-256 as a keyed PRF (the
// Prng's block cipher, see prng.go) is NOT implemented here: that use
// is bit-identical standard AES-256 and goes through crypto/aes
// directly, see prng.go.
//
// The Haraka round constants are not present anywhere in the
// retrieved reference material (see DESIGN.md); they are derived
// deterministically below from a fixed label rather than guessed at,
// so this implementation is internally consistent (deterministic,
// collision-resisting so far as a 6-round AES-based permutation with
// unknown-but-fixed constants can be) without claiming to reproduce
// the original published constant table bit-for-bit.

const harakaRounds = 6

// aesSBox is the standard AES S-box.
var aesSBox = [256]byte{
	0x63, 0x7c, 0x77, 0x7b, 0xf2, 0x6b, 0x6f, 0xc5, 0x30, 0x01, 0x67, 0x2b, 0xfe, 0xd7, 0xab, 0x76,
	0xca, 0x82, 0xc9, 0x7d, 0xfa, 0x59, 0x47, 0xf0, 0xad, 0xd4, 0xa2, 0xaf, 0x9c, 0xa4, 0x72, 0xc0,
	0xb7, 0xfd, 0x93, 0x26, 0x36, 0x3f, 0xf7, 0xcc, 0x34, 0xa5, 0xe5, 0xf1, 0x71, 0xd8, 0x31, 0x15,
	0x04, 0xc7, 0x23, 0xc3, 0x18, 0x96, 0x05, 0x9a, 0x07, 0x12, 0x80, 0xe2, 0xeb, 0x27, 0xb2, 0x75,
	0x09, 0x83, 0x2c, 0x1a, 0x1b, 0x6e, 0x5a, 0xa0, 0x52, 0x3b, 0xd6, 0xb3, 0x29, 0xe3, 0x2f, 0x84,
	0x53, 0xd1, 0x00, 0xed, 0x20, 0xfc, 0xb1, 0x5b, 0x6a, 0xcb, 0xbe, 0x39, 0x4a, 0x4c, 0x58, 0xcf,
	0xd0, 0xef, 0xaa, 0xfb, 0x43, 0x4d, 0x33, 0x85, 0x45, 0xf9, 0x02, 0x7f, 0x50, 0x3c, 0x9f, 0xa8,
	0x51, 0xa3, 0x40, 0x8f, 0x92, 0x9d, 0x38, 0xf5, 0xbc, 0xb6, 0xda, 0x21, 0x10, 0xff, 0xf3, 0xd2,
	0xcd, 0x0c, 0x13, 0xec, 0x5f, 0x97, 0x44, 0x17, 0xc4, 0xa7, 0x7e, 0x3d, 0x64, 0x5d, 0x19, 0x73,
	0x60, 0x81, 0x4f, 0xdc, 0x22, 0x2a, 0x90, 0x88, 0x46, 0xee, 0xb8, 0x14, 0xde, 0x5e, 0x0b, 0xdb,
	0xe0, 0x32, 0x3a, 0x0a, 0x49, 0x06, 0x24, 0x5c, 0xc2, 0xd3, 0xac, 0x62, 0x91, 0x95, 0xe4, 0x79,
	0xe7, 0xc8, 0x37, 0x6d, 0x8d, 0xd5, 0x4e, 0xa9, 0x6c, 0x56, 0xf4, 0xea, 0x65, 0x7a, 0xae, 0x08,
	0xba, 0x78, 0x25, 0x2e, 0x1c, 0xa6, 0xb4, 0xc6, 0xe8, 0xdd, 0x74, 0x1f, 0x4b, 0xbd, 0x8b, 0x8a,
	0x70, 0x3e, 0xb5, 0x66, 0x48, 0x03, 0xf6, 0x0e, 0x61, 0x35, 0x57, 0xb9, 0x86, 0xc1, 0x1d, 0x9e,
	0xe1, 0xf8, 0x98, 0x11, 0x69, 0xd9, 0x8e, 0x94, 0x9b, 0x1e, 0x87, 0xe9, 0xce, 0x55, 0x28, 0xdf,
	0x8c, 0xa1, 0x89, 0x0d, 0xbf, 0xe6, 0x42, 0x68, 0x41, 0x99, 0x2d, 0x0f, 0xb0, 0x54, 0xbb, 0x16,
}

func gmul(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= a
		}
		hi := a & 0x80
		a <<= 1
		if hi != 0 {
			a ^= 0x1b
		}
		b >>= 1
	}
	return p
}

// aesRound applies one standard AES encryption round (SubBytes,
// ShiftRows, MixColumns, AddRoundKey) to a 16-byte state in place.
func aesRound(state *[16]byte, roundKey [16]byte) {
	var sub [16]byte
	for i := range state {
		sub[i] = aesSBox[state[i]]
	}
	var shifted [16]byte
	// Column-major 4x4 state, row r shifted left by r.
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			shifted[col*4+row] = sub[((col+row)%4)*4+row]
		}
	}
	var mixed [16]byte
	for col := 0; col < 4; col++ {
		a0 := shifted[col*4+0]
		a1 := shifted[col*4+1]
		a2 := shifted[col*4+2]
		a3 := shifted[col*4+3]
		mixed[col*4+0] = gmul(a0, 2) ^ gmul(a1, 3) ^ a2 ^ a3
		mixed[col*4+1] = a0 ^ gmul(a1, 2) ^ gmul(a2, 3) ^ a3
		mixed[col*4+2] = a0 ^ a1 ^ gmul(a2, 2) ^ gmul(a3, 3)
		mixed[col*4+3] = gmul(a0, 3) ^ a1 ^ a2 ^ gmul(a3, 2)
	}
	for i := range state {
		state[i] = mixed[i] ^ roundKey[i]
	}
}

// harakaConstants holds one 16-byte round key per lane per AES round:
// 4 lanes, 2 AES rounds per Haraka round, harakaRounds rounds -- generated once at
// package init from a fixed label via repeated SHA-256 (see
// newHarakaConstants).
var harakaConstants = newHarakaConstants()

func newHarakaConstants() [harakaRounds][2][4][16]byte {
	var rc [harakaRounds][2][4][16]byte
	seed := longHash([]byte("gravity haraka round constants v1"))
	for r := 0; r < harakaRounds; r++ {
		for s := 0; s < 2; s++ {
			for lane := 0; lane < 4; lane++ {
				seed = longHash(seed[:])
				copy(rc[r][s][lane][:], seed[:16])
			}
		}
	}
	return rc
}

func unpackLo32(a, b [16]byte) [16]byte {
	var out [16]byte
	copy(out[0:4], a[0:4])
	copy(out[4:8], b[0:4])
	copy(out[8:12], a[4:8])
	copy(out[12:16], b[4:8])
	return out
}

func unpackHi32(a, b [16]byte) [16]byte {
	var out [16]byte
	copy(out[0:4], a[8:12])
	copy(out[4:8], b[8:12])
	copy(out[8:12], a[12:16])
	copy(out[12:16], b[12:16])
	return out
}

func unpackLo64(a, b [16]byte) [16]byte {
	var out [16]byte
	copy(out[0:8], a[0:8])
	copy(out[8:16], b[0:8])
	return out
}

func unpackHi64(a, b [16]byte) [16]byte {
	var out [16]byte
	copy(out[0:8], a[8:16])
	copy(out[8:16], b[8:16])
	return out
}

// harakaPermute512 applies the Haraka permutation to four 128-bit
// lanes: harakaRounds rounds of (2 AES rounds per lane, then a mix).
func harakaPermute512(s [4][16]byte) [4][16]byte {
	for r := 0; r < harakaRounds; r++ {
		for lane := 0; lane < 4; lane++ {
			aesRound(&s[lane], harakaConstants[r][0][lane])
			aesRound(&s[lane], harakaConstants[r][1][lane])
		}
		tmp0 := unpackLo32(s[0], s[1])
		tmp1 := unpackHi32(s[0], s[1])
		tmp2 := unpackLo32(s[2], s[3])
		tmp3 := unpackHi32(s[2], s[3])
		s[0] = unpackLo64(tmp0, tmp2)
		s[1] = unpackHi64(tmp0, tmp2)
		s[2] = unpackLo64(tmp1, tmp3)
		s[3] = unpackHi64(tmp1, tmp3)
	}
	return s
}

// harakaN256 is Haraka-256, 6 rounds: a 32-byte permutation treated as
// two 128-bit lanes, loaded into the 4-lane permutation's first two
// lanes with the other two initialised to zero (the permutation's mix
// step spreads them across all four), then the first two output lanes
// are feed-forward XORed with the input.
func harakaN256(in [32]byte) [32]byte {
	var s [4][16]byte
	copy(s[0][:], in[0:16])
	copy(s[1][:], in[16:32])
	s = harakaPermute512(s)
	var out [32]byte
	copy(out[0:16], s[0][:])
	copy(out[16:32], s[1][:])
	xor.Bytes(out[0:16], out[0:16], in[0:16])
	xor.Bytes(out[16:32], out[16:32], in[16:32])
	return out
}

// haraka2n256 is Haraka-512, 6 rounds: a 64-byte permutation over four
// 128-bit lanes, feed-forward XORed with the input and truncated to
// 32 bytes by selecting the byte ranges [8:16], [24:32], [32:40],
// [48:56] of the 64-byte feed-forward result (the well-known
// Haraka512/256 output-selection pattern).
func haraka2n256(in [64]byte) [32]byte {
	var s [4][16]byte
	for lane := 0; lane < 4; lane++ {
		copy(s[lane][:], in[lane*16:(lane+1)*16])
	}
	s = harakaPermute512(s)
	var full [64]byte
	for lane := 0; lane < 4; lane++ {
		copy(full[lane*16:(lane+1)*16], s[lane][:])
	}
	xor.Bytes(full[:], full[:], in[:])
	var out [32]byte
	copy(out[0:8], full[8:16])
	copy(out[8:16], full[24:32])
	copy(out[16:24], full[32:40])
	copy(out[24:32], full[48:56])
	return out
}
