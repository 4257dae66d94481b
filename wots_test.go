package gravity

import "testing"

func TestWotsSplitMsgAllZero(t *testing.T) {
	var m Hash // all-zero 32-byte message
	digits := wotsSplitMsg(m)
	for i := 0; i < wotsEll1; i++ {
		if digits[i] != 0 {
			t.Fatalf("digits[%d] = %d, want 0 for the all-zero message", i, digits[i])
		}
	}
	// checksum = sum(15-0) over 64 digits = 64*15 = 960 = 0x3c0;
	// little-endian base-16 digits: (0, 12, 3).
	want := [wotsChksum]uint8{0, 12, 3}
	for i := 0; i < wotsChksum; i++ {
		if digits[wotsEll1+i] != want[i] {
			t.Fatalf("checksum digit %d = %d, want %d", i, digits[wotsEll1+i], want[i])
		}
	}
}

func TestWotsSplitMsgNibbleOrder(t *testing.T) {
	var m Hash
	m[0] = 0xab
	digits := wotsSplitMsg(m)
	if digits[0] != 0xa || digits[1] != 0xb {
		t.Fatalf("digits[0:2] = %d,%d, want high nibble then low nibble of 0xab", digits[0], digits[1])
	}
}

func TestWotsSignExtractRoundTrip(t *testing.T) {
	var seed [32]byte
	seed[0] = 3
	prng, err := NewPrng(seed)
	if err != nil {
		t.Fatalf("NewPrng: %v", err)
	}
	sk := wotsGenSecretKey(prng, Address{Layer: 1, Instance: 2})
	pk := wotsPkGen(sk)

	var msg Hash
	msg[0] = 0x5a
	sig := wotsSign(sk, msg)
	got := wotsPkFromSig(sig, msg)
	if got != pk {
		t.Fatalf("wotsPkFromSig(wotsSign(sk, m), m) != wotsPkGen(sk)")
	}
}

func TestWotsExtractWrongMessageFails(t *testing.T) {
	var seed [32]byte
	prng, err := NewPrng(seed)
	if err != nil {
		t.Fatalf("NewPrng: %v", err)
	}
	sk := wotsGenSecretKey(prng, Address{Layer: 0, Instance: 0})
	pk := wotsPkGen(sk)

	var m1, m2 Hash
	m1[0] = 1
	m2[0] = 2
	sig := wotsSign(sk, m1)
	if wotsPkFromSig(sig, m2) == pk {
		t.Fatalf("extracting a WOTS signature against the wrong message must not yield the real public key")
	}
}
