package mem

// Set fills dst with the byte c.
func Set(dst []byte, c byte) {
	for i := range dst {
		dst[i] = c
	}
}

// Copy copies min(len(dst), len(src)) bytes from src to dst and returns the
// count. Source and destination must not overlap; use Move when they might.
func Copy(dst, src []byte) int {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = src[i]
	}
	return n
}

// Move copies min(len(dst), len(src)) bytes and is correct when the slices
// overlap: when dst starts inside src the copy runs backwards so no source
// byte is clobbered before it is read.
func Move(dst, src []byte) int {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	if n == 0 {
		return 0
	}

	if overlapsForward(dst, src, n) {
		for i := n - 1; i >= 0; i-- {
			dst[i] = src[i]
		}
		return n
	}
	for i := 0; i < n; i++ {
		dst[i] = src[i]
	}
	return n
}

// overlapsForward reports whether dst[0] sits inside src[0:n], the case
// where a forward copy would destroy unread source bytes.
func overlapsForward(dst, src []byte, n int) bool {
	if n == 0 {
		return false
	}
	d := &dst[0]
	for i := 1; i < n; i++ {
		if &src[i] == d {
			return true
		}
	}
	return false
}

// Compare compares min(len(a), len(b)) bytes as unsigned values and returns
// the sign of the first difference: -1, 0, or 1. Callers compare ranges of
// equal length; 0 means the compared range is identical.
func Compare(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
