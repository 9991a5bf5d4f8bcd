package mem

import (
	"bytes"
	"testing"
)

func TestSet(t *testing.T) {
	buf := make([]byte, 16)
	Set(buf, 0xA5)
	for i, b := range buf {
		if b != 0xA5 {
			t.Fatalf("byte %d = %#x", i, b)
		}
	}
	Set(nil, 1) // must not panic
}

func TestCopy(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	dst := make([]byte, 4)
	if n := Copy(dst, src); n != 4 {
		t.Fatalf("Copy = %d", n)
	}
	if !bytes.Equal(dst, src) {
		t.Errorf("dst = %v", dst)
	}

	short := make([]byte, 2)
	if n := Copy(short, src); n != 2 {
		t.Errorf("short Copy = %d", n)
	}
}

func TestMoveOverlapForward(t *testing.T) {
	// Shift left: dst before src inside the same buffer.
	buf := []byte{1, 2, 3, 4, 5, 6}
	Move(buf[0:4], buf[2:6])
	if !bytes.Equal(buf[0:4], []byte{3, 4, 5, 6}) {
		t.Errorf("shift left: %v", buf)
	}

	// Shift right: dst after src, the case a naive forward copy corrupts.
	buf = []byte{1, 2, 3, 4, 5, 6}
	Move(buf[2:6], buf[0:4])
	if !bytes.Equal(buf[2:6], []byte{1, 2, 3, 4}) {
		t.Errorf("shift right: %v", buf)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b []byte
		want int
	}{
		{[]byte{1, 2, 3}, []byte{1, 2, 3}, 0},
		{[]byte{1, 2, 2}, []byte{1, 2, 3}, -1},
		{[]byte{1, 2, 4}, []byte{1, 2, 3}, 1},
		{[]byte{0xFF}, []byte{0x01}, 1}, // unsigned comparison
		{nil, nil, 0},
	}
	for _, tt := range tests {
		if got := Compare(tt.a, tt.b); got != tt.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
