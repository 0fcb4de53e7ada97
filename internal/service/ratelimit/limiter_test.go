package ratelimit

import (
	"testing"
	"time"
)

func TestAllowConsumesTokens(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		if !l.Allow("yahoo", 3, 0) {
			t.Fatalf("call %d: expected allow", i)
		}
	}
	if l.Allow("yahoo", 3, 0) {
		t.Fatalf("expected deny after bucket drained")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()

	if !l.Allow("yahoo", 1, 0) {
		t.Fatalf("expected allow for yahoo")
	}
	if l.Allow("yahoo", 1, 0) {
		t.Fatalf("expected deny for drained yahoo")
	}
	if !l.Allow("finnhub", 1, 0) {
		t.Fatalf("expected allow for untouched finnhub")
	}
}

func TestBlockDrainsBucket(t *testing.T) {
	l := New()

	if !l.Allow("finnhub", 5, 1000) {
		t.Fatalf("expected initial allow")
	}
	l.Block("finnhub", time.Minute)
	if l.Allow("finnhub", 5, 1000) {
		t.Fatalf("expected deny while blocked")
	}
}
