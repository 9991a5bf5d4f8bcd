package native

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/wasm-hal/errors"
)

func TestRegistryRegisterAndCall(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("env", "add", func(a, b uint32) uint32 { return a + b }); err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := r.Call("env", "add", PackWords(3, 4))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got != 7 {
		t.Errorf("add = %d, want 7", got)
	}

	f, err := r.Resolve("env", "add")
	if err != nil {
		t.Fatal(err)
	}
	if f.Arity != 2 {
		t.Errorf("Arity = %d, want 2", f.Arity)
	}
}

func TestRegistryRejectsBadShapes(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("env", "wide", func(a, b, c, d, e uint32) uint32 { return 0 }); err == nil {
		t.Error("5-argument function accepted")
	}
	if err := r.Register("env", "f64", func(a float64) uint32 { return 0 }); err == nil {
		t.Error("float argument accepted")
	}
	if err := r.Register("env", "notfn", 42); err == nil {
		t.Error("non-function accepted")
	}
	if err := r.Register("", "add", func() uint32 { return 0 }); err == nil {
		t.Error("empty namespace accepted")
	}
	if err := r.Register("env", "", func() uint32 { return 0 }); err == nil {
		t.Error("empty name accepted")
	}
}

func TestRegistryNotFound(t *testing.T) {
	r := NewRegistry()
	_, err := r.Resolve("env", "missing")
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseNative, Kind: errors.KindNotFound}) {
		t.Errorf("Resolve missing: %v, want not_found", err)
	}
}

func TestRegistrySemverResolution(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("env@1.2.5", "tick", func() uint32 { return 125 }); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("env@2.0.0", "tick", func() uint32 { return 200 }); err != nil {
		t.Fatal(err)
	}

	// Compatible: same major, registered patch above the requested one.
	f, err := r.Resolve("env@1.2.0", "tick")
	if err != nil {
		t.Fatalf("compatible resolve: %v", err)
	}
	if got, _ := f.Invoke(nil); got != 125 {
		t.Errorf("resolved wrong version: %d", got)
	}

	// Exact match wins over compatibility search.
	f, err = r.Resolve("env@2.0.0", "tick")
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := f.Invoke(nil); got != 200 {
		t.Errorf("exact resolve returned %d", got)
	}

	// Major mismatch and too-new requests fail.
	if _, err := r.Resolve("env@3.0.0", "tick"); err == nil {
		t.Error("major mismatch resolved")
	}
	if _, err := r.Resolve("env@1.9.0", "tick"); err == nil {
		t.Error("request newer than any registration resolved")
	}

	// Unversioned request does not match versioned registrations.
	if _, err := r.Resolve("env", "tick"); err == nil {
		t.Error("unversioned request matched versioned namespace")
	}
}

func TestRegistryBadVersion(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("env@banana", "f", func() uint32 { return 0 }); err == nil {
		t.Error("unparseable version accepted")
	}
}

func TestRegistryEnumeration(t *testing.T) {
	r := NewRegistry()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(r.Register("env", "b", func() uint32 { return 0 }))
	must(r.Register("env", "a", func() uint32 { return 0 }))
	must(r.Register("ui@1.0.0", "draw", func(a uint32) uint32 { return a }))

	ns := r.Namespaces()
	if len(ns) != 2 || ns[0] != "env" || ns[1] != "ui@1.0.0" {
		t.Errorf("Namespaces = %v", ns)
	}

	funcs := r.Functions("env")
	if len(funcs) != 2 || funcs[0].Name != "a" || funcs[1].Name != "b" {
		t.Errorf("Functions(env) = %v", funcs)
	}
	if r.Functions("nope") != nil {
		t.Error("Functions of unknown namespace should be nil")
	}
}
