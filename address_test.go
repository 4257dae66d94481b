package gravity

import "testing"

// Ported from original_source/src/address.rs's test_to_block:
// Address::new(0x01020304, 0x05060708090a0b0c).to_block(0x0d0e0f00).
func TestAddressToBlock(t *testing.T) {
	a := Address{Layer: 0x01020304, Instance: 0x05060708090a0b0c}
	block := a.ToBlock(0x0d0e0f00)
	want := []byte{
		5, 6, 7, 8, 9, 10, 11, 12,
		1, 2, 3, 4,
		13, 14, 15, 0,
	}
	for i := range want {
		if block[i] != want[i] {
			t.Fatalf("block[%d] = %#x, want %#x", i, block[i], want[i])
		}
	}
}

// Ported from original_source/src/address.rs's test_next_layer:
// Address::new(0x01020304, 0x05060708090a0b0c).next_layer() leaves
// instance untouched and decrements layer by one.
func TestAddressNextLayer(t *testing.T) {
	a := Address{Layer: 0x01020304, Instance: 0x05060708090a0b0c}
	a = a.NextLayer()
	if a.Layer != 0x01020303 {
		t.Fatalf("NextLayer: layer = %#x, want %#x", a.Layer, 0x01020303)
	}
	if a.Instance != 0x05060708090a0b0c {
		t.Fatalf("NextLayer must not touch Instance")
	}
}

// Ported from original_source/src/address.rs's test_shift:
// Address::new(0x01020304, 0x05060708090a0b0c).shift(12) yields
// instance 0x05060708090a0.
func TestAddressShift(t *testing.T) {
	a := Address{Layer: 0x01020304, Instance: 0x05060708090a0b0c}
	shifted := a.Shift(12)
	if shifted.Instance != 0x05060708090a0 {
		t.Fatalf("Shift(12): Instance = %#x, want %#x", shifted.Instance, uint64(0x05060708090a0))
	}
	if shifted.Layer != a.Layer {
		t.Fatalf("Shift must not touch Layer")
	}
}

// Ported from original_source/src/address.rs's test_normalize_index:
// Address::new(0x01020304, 0x05060708090a0b0c).normalize_index(0xFFF)
// (mask 0xFFF is the height-12 mask NormalizeIndex derives internally)
// yields index 0xb0c and base instance 0x05060708090a0000.
func TestAddressNormalizeIndex(t *testing.T) {
	a := Address{Layer: 0x01020304, Instance: 0x05060708090a0b0c}
	index, base := a.NormalizeIndex(12)
	if index != 0xb0c {
		t.Fatalf("NormalizeIndex: index = %#x, want %#x", index, 0xb0c)
	}
	if base.Instance != 0x05060708090a0000 {
		t.Fatalf("NormalizeIndex: base.Instance = %#x, want %#x", base.Instance, uint64(0x05060708090a0000))
	}
	if base.Layer != a.Layer {
		t.Fatalf("NormalizeIndex must not touch Layer")
	}
}

// Ported from original_source/src/address.rs's test_incr_instance:
// Address::new(0x01020304, 0x05060708090a0b0c).incr_instance()
// yields instance 0x05060708090a0b0d, layer untouched.
func TestAddressIncrInstance(t *testing.T) {
	a := Address{Layer: 0x01020304, Instance: 0x05060708090a0b0c}
	incr := a.IncrInstance()
	if incr.Instance != 0x05060708090a0b0d {
		t.Fatalf("IncrInstance: Instance = %#x, want %#x", incr.Instance, uint64(0x05060708090a0b0d))
	}
	if incr.Layer != a.Layer {
		t.Fatalf("IncrInstance must not touch Layer")
	}
	if a.Instance != 0x05060708090a0b0c {
		t.Fatalf("IncrInstance mutated the receiver; Address must be copy-on-modify")
	}
}

func TestGravityMaskFullWidth(t *testing.T) {
	// C + H*D == 64 must produce an all-ones mask, not panic or
	// silently truncate (see gravityMask's doc comment).
	if mask := gravityMask(64); mask != ^uint64(0) {
		t.Fatalf("gravityMask(64) = %#x, want all-ones", mask)
	}
	if mask := gravityMask(0); mask != 0 {
		t.Fatalf("gravityMask(0) = %#x, want 0", mask)
	}
	if mask := gravityMask(4); mask != 0xf {
		t.Fatalf("gravityMask(4) = %#x, want 0xf", mask)
	}
}
