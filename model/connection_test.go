package model

import "testing"

func TestConnectionListDuplicateFatal(t *testing.T) {
	cl := NewConnectionList(KeyedSrcToDst)
	if _, err := cl.Add(0, 0, nil); err != nil {
		t.Fatalf("unexpected error on first add: %v", err)
	}
	if _, err := cl.Add(0, 0, nil); err == nil {
		t.Fatalf("expected duplicate connection instance to be fatal")
	}
}

func TestConnectionListLookupOrientation(t *testing.T) {
	cl := NewConnectionList(KeyedDstToSrc)
	inst, err := cl.Add(3, 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := cl.Lookup(3, 5)
	if !ok || got != inst {
		t.Fatalf("Lookup(3,5) = %v,%v want %v,true", got, ok, inst)
	}
	// internal orientation is dst->src
	if _, ok := cl.ByFirstKey[5][3]; !ok {
		t.Fatalf("expected ByFirstKey keyed by dst outer, src inner")
	}
}
