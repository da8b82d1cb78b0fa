package common

import "testing"

func TestBytesToHashPadsAndTruncates(t *testing.T) {
	h := BytesToHash([]byte{1, 2, 3})
	if h[HashLength-1] != 3 || h[HashLength-2] != 2 || h[HashLength-3] != 1 {
		t.Fatalf("expected right-aligned bytes, got %x", h)
	}
	for i := 0; i < HashLength-3; i++ {
		if h[i] != 0 {
			t.Fatalf("expected left padding at byte %d, got %x", i, h)
		}
	}

	long := make([]byte, HashLength+5)
	for i := range long {
		long[i] = byte(i)
	}
	h2 := BytesToHash(long)
	if h2.Bytes()[0] != long[5] {
		t.Fatalf("expected truncation from the left, got %x", h2)
	}
}

func TestBloomAddAndTest(t *testing.T) {
	var b Bloom
	b.Add([]byte("hello"))
	if !b.Test([]byte("hello")) {
		t.Fatalf("expected bloom to report membership for included item")
	}
	// An empty bloom filter has no bits set, so it reports non-membership
	// for any key with certainty.
	var empty Bloom
	if empty.Test([]byte("hello")) {
		t.Fatalf("expected empty bloom to report non-membership")
	}
}

func TestHashString(t *testing.T) {
	h := BytesToHash([]byte{0xab, 0xcd})
	if got, want := h.String()[:2], "0x"; got != want {
		t.Fatalf("String() = %q, want prefix %q", h.String(), want)
	}
}
