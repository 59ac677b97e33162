package consensus

import (
	"bytes"
	"testing"
)

func TestCompactSizeRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff, 0x100000000}
	for _, n := range cases {
		b := CompactSize(n)
		r := newReader(b)
		got, err := r.readCompactSize()
		if err != nil {
			t.Fatalf("n=%d: readCompactSize: %v", n, err)
		}
		if got != n {
			t.Fatalf("n=%d: round trip got %d", n, got)
		}
	}
}

func TestCompactSizeWidths(t *testing.T) {
	cases := map[uint64]int{
		0:          1,
		0xfc:       1,
		0xfd:       3,
		0xffff:     3,
		0x10000:    5,
		0xffffffff: 5,
		0x1_00000000: 9,
	}
	for n, width := range cases {
		if got := len(CompactSize(n)); got != width {
			t.Fatalf("n=%d: width=%d, want %d", n, got, width)
		}
	}
}

func TestLEEncodesLittleEndian(t *testing.T) {
	got := LE(0x0102, 4)
	want := []byte{0x02, 0x01, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestReverseRoundTrip(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5}
	r := Reverse(b)
	if !bytes.Equal(Reverse(r), b) {
		t.Fatalf("reverse twice should be identity")
	}
	if bytes.Equal(r, b) {
		t.Fatalf("reverse of a non-palindrome should differ from the original")
	}
}

func TestHash256IsDoubleSha256(t *testing.T) {
	got := Hash256([]byte("abc"))
	first := Sha256([]byte("abc"))
	want := Sha256(first[:])
	if got != want {
		t.Fatalf("Hash256 does not match two applications of Sha256")
	}
}

func TestHash160Length(t *testing.T) {
	h := Hash160([]byte("hello"))
	if len(h) != 20 {
		t.Fatalf("Hash160 returned %d bytes, want 20", len(h))
	}
}
