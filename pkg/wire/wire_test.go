package wire

import "testing"

func TestPutGetRoundTrip(t *testing.T) {
	var buf []byte
	buf = PutUint8(buf, 0xAB)
	buf = PutInt16(buf, -1234)
	buf = PutUint32(buf, 0xDEADBEEF)
	buf = PutFloat32(buf, 3.5)
	buf = PutUint64(buf, 0x0102030405060708)
	buf = PutFloat64(buf, 2.71828)

	off := 0
	if got := GetUint8(buf, off); got != 0xAB {
		t.Errorf("GetUint8 = %#x", got)
	}
	off += 1
	if got := GetInt16(buf, off); got != -1234 {
		t.Errorf("GetInt16 = %d", got)
	}
	off += 2
	if got := GetUint32(buf, off); got != 0xDEADBEEF {
		t.Errorf("GetUint32 = %#x", got)
	}
	off += 4
	if got := GetFloat32(buf, off); got != 3.5 {
		t.Errorf("GetFloat32 = %v", got)
	}
	off += 4
	if got := GetUint64(buf, off); got != 0x0102030405060708 {
		t.Errorf("GetUint64 = %#x", got)
	}
	off += 8
	if got := GetFloat64(buf, off); got != 2.71828 {
		t.Errorf("GetFloat64 = %v", got)
	}
}

func TestTruncateExtensionsDropsTrailingZeros(t *testing.T) {
	payload := append([]byte{1, 2, 3}, 0, 0, 0, 0)
	got := TruncateExtensions(payload, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
}

func TestTruncateExtensionsNeverBelowBase(t *testing.T) {
	payload := []byte{0, 0, 0}
	got := TruncateExtensions(payload, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 (never shorter than base)", len(got))
	}
}

func TestTruncateExtensionsKeepsNonZeroTail(t *testing.T) {
	payload := []byte{1, 2, 3, 0, 5, 0, 0}
	got := TruncateExtensions(payload, 3)
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5 (stop at the last non-zero byte)", len(got))
	}
}

func TestPadToBaseExtendsShortPayload(t *testing.T) {
	got := PadToBase([]byte{1, 2}, 5)
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	for i := 2; i < 5; i++ {
		if got[i] != 0 {
			t.Errorf("byte %d = %d, want 0", i, got[i])
		}
	}
}

func TestPadToBaseLeavesLongPayloadAlone(t *testing.T) {
	in := []byte{1, 2, 3, 4, 5, 6}
	got := PadToBase(in, 3)
	if len(got) != len(in) {
		t.Fatalf("len = %d, want %d", len(got), len(in))
	}
}

func TestHasExtensionBytes(t *testing.T) {
	if HasExtensionBytes([]byte{1, 2, 3}, 3) {
		t.Error("3-byte buffer should have no bytes at offset 3")
	}
	if !HasExtensionBytes([]byte{1, 2, 3, 4}, 3) {
		t.Error("4-byte buffer should have a byte at offset 3")
	}
}
