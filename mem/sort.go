package mem

import "github.com/wippyai/wasm-hal/errors"

// CompareFunc orders two raw elements. It returns a negative value when a
// sorts before b, zero when they are equal, positive otherwise.
type CompareFunc func(a, b []byte) int

// Sort orders count fixed-size elements packed in data, in place, so that
// the result is non-decreasing under cmp. The sort is not stable. It is a
// plain quadratic exchange sort: the engine's call sites sort bounded-size
// tables, never bulk data.
func Sort(data []byte, count, size int, cmp CompareFunc) error {
	if err := checkTable(data, count, size); err != nil {
		return err
	}
	if cmp == nil {
		return errors.InvalidInput(errors.PhasePrimitive, "nil comparator")
	}
	if count <= 1 {
		return nil
	}

	for i := 0; i < count-1; i++ {
		for j := 0; j < count-i-1; j++ {
			p1 := data[j*size : (j+1)*size]
			p2 := data[(j+1)*size : (j+2)*size]
			if cmp(p1, p2) > 0 {
				swap(p1, p2)
			}
		}
	}
	return nil
}

// Search looks up key in an ascending array of count fixed-size elements and
// returns the index of some matching element, or -1. Which match it returns
// among equals is unspecified. It performs at most ceil(log2(count))+1
// comparisons; the array must already be sorted under cmp.
func Search(key, data []byte, count, size int, cmp CompareFunc) (int, error) {
	if err := checkTable(data, count, size); err != nil {
		return -1, err
	}
	if cmp == nil {
		return -1, errors.InvalidInput(errors.PhasePrimitive, "nil comparator")
	}

	base := 0
	for count > 0 {
		mid := count / 2
		idx := base + mid
		c := cmp(key, data[idx*size:(idx+1)*size])
		switch {
		case c == 0:
			return idx, nil
		case c < 0:
			count = mid
		default:
			base = idx + 1
			count = count - mid - 1
		}
	}
	return -1, nil
}

func checkTable(data []byte, count, size int) error {
	if count < 0 || size <= 0 {
		return errors.InvalidInput(errors.PhasePrimitive, "element count and size must be positive")
	}
	if count*size > len(data) {
		return errors.New(errors.PhasePrimitive, errors.KindOutOfBounds).
			Detail("%d elements of %d bytes exceed buffer of %d", count, size, len(data)).
			Build()
	}
	return nil
}

func swap(a, b []byte) {
	for i := range a {
		a[i], b[i] = b[i], a[i]
	}
}
