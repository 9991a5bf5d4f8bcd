package mem

import (
	"bytes"
	"testing"
)

// formatted returns the buffer contents up to the terminator plus the count.
func formatted(t *testing.T, f Formatter, capacity int, format string, args ...any) (string, int) {
	t.Helper()
	buf := make([]byte, capacity)
	Set(buf, 0xFF) // poison so a missing terminator is caught
	n := f.Format(buf, format, args...)
	if capacity > 0 {
		if buf[n] != 0 {
			t.Fatalf("no NUL at %d: %v", n, buf)
		}
	}
	return string(buf[:n]), n
}

func TestFormatSubstitute(t *testing.T) {
	tests := []struct {
		format string
		args   []any
		want   string
	}{
		{"plain", nil, "plain"},
		{"n=%d", []any{42}, "n=42"},
		{"n=%d", []any{-7}, "n=-7"},
		{"u=%u", []any{uint32(4000000000)}, "u=4000000000"},
		{"x=%x", []any{uint32(0xBEEF)}, "x=beef"},
		{"s=%s", []any{"str"}, "s=str"},
		{"s=%s", []any{append([]byte("cut"), 0, 'X')}, "s=cut"},
		{"c=%c", []any{byte('Q')}, "c=Q"},
		{"100%%", nil, "100%"},
		{"%d+%d=%d", []any{3, 4, 7}, "3+4=7"},
		// Unknown verb and exhausted args pass through verbatim.
		{"%q", []any{1}, "%q"},
		{"%d %d", []any{1}, "1 %d"},
		{"trail%", nil, "trail%"},
	}

	for _, tt := range tests {
		got, n := formatted(t, Formatter{}, 64, tt.format, tt.args...)
		if got != tt.want {
			t.Errorf("Format(%q, %v) = %q, want %q", tt.format, tt.args, got, tt.want)
		}
		if n != len(tt.want) {
			t.Errorf("Format(%q) count = %d, want %d", tt.format, n, len(tt.want))
		}
	}
}

func TestFormatVerbatim(t *testing.T) {
	got, _ := formatted(t, Formatter{Mode: ModeVerbatim}, 64, "count=%d", 42)
	if got != "count=%d" {
		t.Errorf("verbatim = %q, want %q", got, "count=%d")
	}
}

func TestFormatTruncation(t *testing.T) {
	for _, mode := range []Mode{ModeSubstitute, ModeVerbatim} {
		got, n := formatted(t, Formatter{Mode: mode}, 6, "0123456789")
		if got != "01234" || n != 5 {
			t.Errorf("mode %d: truncated = %q (n=%d), want %q (5)", mode, got, n, "01234")
		}
	}

	// Truncation mid-substitution still terminates.
	got, n := formatted(t, Formatter{}, 5, "v=%d", 123456)
	if n != 4 || got != "v=12" {
		t.Errorf("mid-number truncation = %q (n=%d)", got, n)
	}
}

func TestFormatZeroCapacity(t *testing.T) {
	if n := Format(nil, "anything"); n != 0 {
		t.Errorf("zero-capacity Format = %d", n)
	}
}

func TestFormatNeverOverruns(t *testing.T) {
	buf := make([]byte, 12)
	guard := buf[8:]
	Set(guard, 0x7E)
	Format(buf[:8], "longer than eight bytes %d", 12345)
	if !bytes.Equal(guard, []byte{0x7E, 0x7E, 0x7E, 0x7E}) {
		t.Errorf("guard bytes clobbered: %v", guard)
	}
}
