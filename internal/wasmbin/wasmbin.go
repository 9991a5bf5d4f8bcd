// Package wasmbin assembles minimal core WebAssembly modules in memory so
// engine tests and examples need no checked-in binaries.
//
// Only the subset the host layer's world needs is supported: i32-only
// function signatures, function imports, exports, and raw instruction
// bodies with no locals. Anything richer belongs in a real toolchain.
package wasmbin

const (
	sectionType     byte = 1
	sectionImport   byte = 2
	sectionFunction byte = 3
	sectionExport   byte = 7
	sectionCode     byte = 10
)

const (
	funcTypeByte byte = 0x60
	valI32       byte = 0x7F
	kindFunc     byte = 0x00
)

// Handy opcodes for building test bodies.
const (
	OpLocalGet byte = 0x20
	OpI32Const byte = 0x41
	OpI32Add   byte = 0x6A
	OpCall     byte = 0x10
	OpEnd      byte = 0x0B
)

// FuncType is an i32-only signature: Params inputs and Results outputs.
type FuncType struct {
	Params  int
	Results int
}

// Import is one imported function.
type Import struct {
	Module string
	Name   string
	Type   uint32 // index into Types
}

// Export names a function by its index in the module's combined function
// index space (imports first, then local functions).
type Export struct {
	Name string
	Func uint32
}

// Module is a minimal core module under construction.
type Module struct {
	Types   []FuncType
	Imports []Import
	Funcs   []uint32 // type index per local function
	Bodies  [][]byte // instructions per local function, OpEnd included
	Exports []Export
}

// Encode renders the module to the WebAssembly binary format.
func (m *Module) Encode() []byte {
	// Magic and version.
	out := []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}

	if len(m.Types) > 0 {
		var sec []byte
		sec = uleb(sec, uint32(len(m.Types)))
		for _, t := range m.Types {
			sec = append(sec, funcTypeByte)
			sec = uleb(sec, uint32(t.Params))
			for i := 0; i < t.Params; i++ {
				sec = append(sec, valI32)
			}
			sec = uleb(sec, uint32(t.Results))
			for i := 0; i < t.Results; i++ {
				sec = append(sec, valI32)
			}
		}
		out = section(out, sectionType, sec)
	}

	if len(m.Imports) > 0 {
		var sec []byte
		sec = uleb(sec, uint32(len(m.Imports)))
		for _, imp := range m.Imports {
			sec = name(sec, imp.Module)
			sec = name(sec, imp.Name)
			sec = append(sec, kindFunc)
			sec = uleb(sec, imp.Type)
		}
		out = section(out, sectionImport, sec)
	}

	if len(m.Funcs) > 0 {
		var sec []byte
		sec = uleb(sec, uint32(len(m.Funcs)))
		for _, typeIdx := range m.Funcs {
			sec = uleb(sec, typeIdx)
		}
		out = section(out, sectionFunction, sec)
	}

	if len(m.Exports) > 0 {
		var sec []byte
		sec = uleb(sec, uint32(len(m.Exports)))
		for _, exp := range m.Exports {
			sec = name(sec, exp.Name)
			sec = append(sec, kindFunc)
			sec = uleb(sec, exp.Func)
		}
		out = section(out, sectionExport, sec)
	}

	if len(m.Bodies) > 0 {
		var sec []byte
		sec = uleb(sec, uint32(len(m.Bodies)))
		for _, body := range m.Bodies {
			var fn []byte
			fn = uleb(fn, 0) // no locals
			fn = append(fn, body...)
			sec = uleb(sec, uint32(len(fn)))
			sec = append(sec, fn...)
		}
		out = section(out, sectionCode, sec)
	}

	return out
}

func section(out []byte, id byte, body []byte) []byte {
	out = append(out, id)
	out = uleb(out, uint32(len(body)))
	return append(out, body...)
}

func name(out []byte, s string) []byte {
	out = uleb(out, uint32(len(s)))
	return append(out, s...)
}

// uleb appends n as unsigned LEB128.
func uleb(out []byte, n uint32) []byte {
	for {
		b := byte(n & 0x7F)
		n >>= 7
		if n != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if n == 0 {
			return out
		}
	}
}

// ULEB exposes the LEB128 encoder for callers hand-writing instruction
// immediates.
func ULEB(n uint32) []byte {
	return uleb(nil, n)
}

// SLEB encodes a signed LEB128 immediate, the encoding i32.const takes.
func SLEB(n int32) []byte {
	var out []byte
	for {
		b := byte(n & 0x7F)
		n >>= 7
		if (n == 0 && b&0x40 == 0) || (n == -1 && b&0x40 != 0) {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}
