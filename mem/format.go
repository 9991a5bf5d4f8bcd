package mem

import "strconv"

// Mode selects how Format treats conversion specifiers.
type Mode int

const (
	// ModeSubstitute renders the supported specifier subset. This is the
	// default and what downstream callers of the layer expect.
	ModeSubstitute Mode = iota

	// ModeVerbatim copies the format string byte-for-byte and ignores the
	// arguments entirely, preserving the behavior of the original stub for
	// embeddings that came to depend on it.
	ModeVerbatim
)

// Formatter renders bounded, NUL-terminated output.
//
// Supported specifiers in substitute mode: %d (signed decimal), %u (unsigned
// decimal), %x (lowercase hex), %s (string, []byte read as C string), %c
// (single byte) and %%. Anything else, including a specifier with no
// remaining argument, is copied through verbatim. Width, precision, and
// length modifiers are not parsed; the engine's callers never use them.
type Formatter struct {
	Mode Mode
}

// Format writes into dst at most len(dst)-1 bytes of rendered output
// followed by a NUL terminator, and returns the number of bytes written
// excluding the terminator. A zero-capacity dst writes nothing and returns 0.
func (f Formatter) Format(dst []byte, format string, args ...any) int {
	if len(dst) == 0 {
		return 0
	}

	w := boundedWriter{dst: dst, limit: len(dst) - 1}

	if f.Mode == ModeVerbatim {
		for i := 0; i < len(format) && !w.full(); i++ {
			w.writeByte(format[i])
		}
		dst[w.n] = 0
		return w.n
	}

	next := 0
	for i := 0; i < len(format) && !w.full(); i++ {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			w.writeByte(c)
			continue
		}

		verb := format[i+1]
		if verb == '%' {
			w.writeByte('%')
			i++
			continue
		}

		if next >= len(args) || !w.writeVerb(verb, args[next]) {
			// Unknown verb or exhausted arguments: pass the specifier through.
			w.writeByte('%')
			continue
		}
		next++
		i++
	}

	dst[w.n] = 0
	return w.n
}

// Format renders with the default substituting formatter.
func Format(dst []byte, format string, args ...any) int {
	return Formatter{}.Format(dst, format, args...)
}

type boundedWriter struct {
	dst   []byte
	limit int
	n     int
}

func (w *boundedWriter) full() bool {
	return w.n >= w.limit
}

func (w *boundedWriter) writeByte(c byte) {
	if w.n < w.limit {
		w.dst[w.n] = c
		w.n++
	}
}

func (w *boundedWriter) writeString(s string) {
	for i := 0; i < len(s) && w.n < w.limit; i++ {
		w.dst[w.n] = s[i]
		w.n++
	}
}

// writeVerb renders one conversion. It reports false for a verb it does not
// understand or an argument of the wrong shape, leaving the writer untouched.
func (w *boundedWriter) writeVerb(verb byte, arg any) bool {
	switch verb {
	case 'd':
		v, ok := toInt64(arg)
		if !ok {
			return false
		}
		w.writeString(strconv.FormatInt(v, 10))
	case 'u':
		v, ok := toUint64(arg)
		if !ok {
			return false
		}
		w.writeString(strconv.FormatUint(v, 10))
	case 'x':
		v, ok := toUint64(arg)
		if !ok {
			return false
		}
		w.writeString(strconv.FormatUint(v, 16))
	case 's':
		switch s := arg.(type) {
		case string:
			w.writeString(s)
		case []byte:
			w.writeString(string(s[:CStrLen(s)]))
		default:
			return false
		}
	case 'c':
		switch c := arg.(type) {
		case byte:
			w.writeByte(c)
		case rune:
			w.writeByte(byte(c))
		case int:
			w.writeByte(byte(c))
		default:
			return false
		}
	default:
		return false
	}
	return true
}

func toInt64(arg any) (int64, bool) {
	switch v := arg.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		return int64(v), true
	case uint64:
		return int64(v), true
	default:
		return 0, false
	}
}

func toUint64(arg any) (uint64, bool) {
	switch v := arg.(type) {
	case uint:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	case int:
		return uint64(uint32(v)), true
	case int32:
		return uint64(uint32(v)), true
	case int64:
		return uint64(v), true
	default:
		return 0, false
	}
}
