package mem

// CStrLen returns the number of bytes before the first NUL in s, or len(s)
// when s holds no terminator.
func CStrLen(s []byte) int {
	for i, c := range s {
		if c == 0 {
			return i
		}
	}
	return len(s)
}

// CStrCompare compares two NUL-terminated byte strings and returns the sign
// of the first differing byte (unsigned comparison), 0 on full equality.
func CStrCompare(a, b []byte) int {
	return CStrNCompare(a, b, -1)
}

// CStrNCompare is CStrCompare bounded to at most n bytes. A negative n means
// unbounded. It returns 0 only when the strings are equal within the bound.
func CStrNCompare(a, b []byte, n int) int {
	i := 0
	for {
		if n >= 0 && i >= n {
			return 0
		}
		ca := cstrByte(a, i)
		cb := cstrByte(b, i)
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		if ca == 0 {
			return 0
		}
		i++
	}
}

// cstrByte reads s[i], treating the end of the slice as the terminator.
func cstrByte(s []byte, i int) byte {
	if i >= len(s) {
		return 0
	}
	return s[i]
}

// FindSubstring returns the offset of the first occurrence of needle in
// haystack, or -1. Both operands are read as C strings: scanning stops at
// the first NUL. An empty needle matches at offset 0.
func FindSubstring(haystack, needle []byte) int {
	hn := CStrLen(haystack)
	nn := CStrLen(needle)
	if nn == 0 {
		return 0
	}

	for i := 0; i+nn <= hn; i++ {
		j := 0
		for j < nn && haystack[i+j] == needle[j] {
			j++
		}
		if j == nn {
			return i
		}
	}
	return -1
}
