package native

import (
	"encoding/binary"

	"github.com/wippyai/wasm-hal/errors"
)

// WordSize is the size of one packed argument and of the return slot.
const WordSize = 4

// MaxArity is the largest argument count the bridge can dispatch.
const MaxArity = 4

// Typed callables the bridge dispatches to. Arguments and results are
// opaque 32-bit words; the bridge does no 64-bit or floating-point widening.
type (
	Func0 func() uint32
	Func1 func(a uint32) uint32
	Func2 func(a, b uint32) uint32
	Func3 func(a, b, c uint32) uint32
	Func4 func(a, b, c, d uint32) uint32
)

// Call is one native invocation: a callable plus its word-packed arguments.
type Call struct {
	Fn   any
	Args []byte
}

// Invoke dispatches the call and returns the 4-byte result word.
func (c Call) Invoke() (uint32, error) {
	return Invoke(c.Fn, c.Args)
}

// Invoke calls fn with the arguments packed in args as little-endian 4-byte
// words. The arity is len(args)/4 and must match fn's shape exactly. A call
// with more than MaxArity words fails with an unsupported-arity error; it is
// never silently dropped.
func Invoke(fn any, args []byte) (uint32, error) {
	if fn == nil {
		return 0, errors.InvalidInput(errors.PhaseNative, "nil function")
	}
	if len(args)%WordSize != 0 {
		return 0, errors.New(errors.PhaseNative, errors.KindInvalidInput).
			Detail("argument buffer of %d bytes is not word-aligned", len(args)).
			Build()
	}

	argc := len(args) / WordSize
	if argc > MaxArity {
		return 0, errors.UnsupportedArity(argc)
	}

	var w [MaxArity]uint32
	for i := 0; i < argc; i++ {
		w[i] = binary.LittleEndian.Uint32(args[i*WordSize:])
	}

	switch argc {
	case 0:
		if f, ok := asFunc0(fn); ok {
			return f(), nil
		}
	case 1:
		if f, ok := asFunc1(fn); ok {
			return f(w[0]), nil
		}
	case 2:
		if f, ok := asFunc2(fn); ok {
			return f(w[0], w[1]), nil
		}
	case 3:
		if f, ok := asFunc3(fn); ok {
			return f(w[0], w[1], w[2]), nil
		}
	case 4:
		if f, ok := asFunc4(fn); ok {
			return f(w[0], w[1], w[2], w[3]), nil
		}
	}

	got, ok := arityOf(fn)
	if !ok {
		return 0, errors.New(errors.PhaseNative, errors.KindInvalidInput).
			Detail("unsupported function shape %T", fn).
			Build()
	}
	return 0, errors.New(errors.PhaseNative, errors.KindUnsupportedArity).
		Detail("%d argument words for a %d-argument function", argc, got).
		Value(argc).
		Build()
}

// PackWords packs 32-bit words into the bridge's argument buffer layout.
func PackWords(words ...uint32) []byte {
	buf := make([]byte, len(words)*WordSize)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i*WordSize:], w)
	}
	return buf
}

// arityOf reports the argument count of a supported callable shape.
func arityOf(fn any) (int, bool) {
	if _, ok := asFunc0(fn); ok {
		return 0, true
	}
	if _, ok := asFunc1(fn); ok {
		return 1, true
	}
	if _, ok := asFunc2(fn); ok {
		return 2, true
	}
	if _, ok := asFunc3(fn); ok {
		return 3, true
	}
	if _, ok := asFunc4(fn); ok {
		return 4, true
	}
	return 0, false
}

// The as* helpers accept both the named Func types and bare function values
// of the same signature.

func asFunc0(fn any) (Func0, bool) {
	switch f := fn.(type) {
	case Func0:
		return f, true
	case func() uint32:
		return f, true
	}
	return nil, false
}

func asFunc1(fn any) (Func1, bool) {
	switch f := fn.(type) {
	case Func1:
		return f, true
	case func(uint32) uint32:
		return f, true
	}
	return nil, false
}

func asFunc2(fn any) (Func2, bool) {
	switch f := fn.(type) {
	case Func2:
		return f, true
	case func(uint32, uint32) uint32:
		return f, true
	}
	return nil, false
}

func asFunc3(fn any) (Func3, bool) {
	switch f := fn.(type) {
	case Func3:
		return f, true
	case func(uint32, uint32, uint32) uint32:
		return f, true
	}
	return nil, false
}

func asFunc4(fn any) (Func4, bool) {
	switch f := fn.(type) {
	case Func4:
		return f, true
	case func(uint32, uint32, uint32, uint32) uint32:
		return f, true
	}
	return nil, false
}
