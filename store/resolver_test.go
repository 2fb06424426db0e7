package store_test

import (
	"testing"

	"github.com/kmoz000/shared-memory-store/store"
)

type labeled struct {
	name string
}

func (l labeled) String() string { return "label:" + l.name }

type panicker struct{}

func (panicker) String() string { panic("no string form") }

func TestCanonicalKeyForms(t *testing.T) {
	s := newQuietStore(t)

	tests := []struct {
		name string
		key  any
		want string
	}{
		{name: "nil", key: nil, want: ""},
		{name: "string verbatim", key: "plain", want: "plain"},
		{name: "bool", key: true, want: "true"},
		{name: "int", key: 42, want: "42"},
		{name: "negative int64", key: int64(-7), want: "-7"},
		{name: "uint", key: uint(9), want: "9"},
		{name: "float with fraction", key: 1.5, want: "1.5"},
		{name: "whole float", key: 10.0, want: "10"},
		{name: "stringer", key: labeled{name: "a"}, want: "label:a"},
		{name: "map canonical json", key: map[string]int{"b": 2, "a": 1}, want: `{"a":1,"b":2}`},
		{name: "slice json", key: []int{1, 2}, want: "[1,2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.Clear()
			s.Set(tt.key, "v")

			keys := s.Keys()
			if len(keys) != 1 {
				t.Fatalf("Keys() = %v, want exactly one key", keys)
			}
			if keys[0] != tt.want {
				t.Errorf("canonical key = %q, want %q", keys[0], tt.want)
			}
		})
	}
}

func TestKeyNamespace_IsShared(t *testing.T) {
	s := newQuietStore(t)

	// Primitives share the namespace with their string forms.
	s.Set(1, "int-keyed")
	got, ok := s.Get("1")
	if !ok {
		t.Fatal(`Get("1") = absent, want present: int 1 and string "1" share a canonical key`)
	}
	if got != "int-keyed" {
		t.Errorf(`Get("1") = %v, want "int-keyed"`, got)
	}
}

func TestUnstringifiableKey_UsesSentinel(t *testing.T) {
	s := newQuietStore(t)

	// Channels have no JSON encoding; both keys collapse onto the sentinel
	// instead of failing the operation.
	if ok := s.Set(make(chan int), "v1"); !ok {
		t.Fatal("Set(chan) = false, want true: canonicalization must never fail")
	}
	got, ok := s.Get(make(chan int))
	if !ok {
		t.Fatal("Get(chan) = absent, want present via the sentinel key")
	}
	if got != "v1" {
		t.Errorf("Get(chan) = %v, want v1", got)
	}
}

func TestNilHandleKey_ResolvesLikeNilKey(t *testing.T) {
	s := newQuietStore(t)

	var h *store.Handle
	if ok := s.Set(h, "v"); !ok {
		t.Fatal("Set(nil handle) = false, want true")
	}
	got, ok := s.Get(h)
	if !ok {
		t.Fatal("Get(nil handle) = absent, want present")
	}
	if got != "v" {
		t.Errorf("Get(nil handle) = %v, want v", got)
	}

	// A nil handle shares the empty canonical key with a plain nil key.
	if v, ok := s.Get(nil); !ok || v != "v" {
		t.Errorf("Get(nil) = %v, %v; want v, true", v, ok)
	}
	if !s.Has(h) {
		t.Error("Has(nil handle) = false, want true")
	}
	if !s.Delete(h) {
		t.Error("Delete(nil handle) = false, want true")
	}
}

func TestPanickingStringer_UsesSentinel(t *testing.T) {
	s := newQuietStore(t)

	if ok := s.Set(panicker{}, "v"); !ok {
		t.Fatal("Set(panicker) = false, want true")
	}
	if _, ok := s.Get(panicker{}); !ok {
		t.Error("Get(panicker) = absent, want present: String panic degrades to the sentinel key")
	}
}
