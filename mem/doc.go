// Package mem supplies the minimal byte, string, sort, search, and format
// primitives the engine's portable code depends on.
//
// Everything here has the shape and semantics of its libc counterpart but no
// optimization: these are the helpers a freestanding target provides when
// there is no standard library underneath. Byte parameters are plain Go
// slices; "C strings" are byte slices read up to the first NUL (or the end
// of the slice when no NUL is present).
//
// Sort and Search operate on raw fixed-size elements packed in a single
// byte slice, exactly the qsort/bsearch calling convention. Sort is a
// straightforward quadratic algorithm; the engine only sorts bounded-size
// tables, so there is no need for anything faster. Search requires an
// ascending array and performs O(log n) comparisons.
//
// Format is the bounded vsnprintf replacement. It never exceeds the
// destination's capacity, always NUL-terminates, and supports a deliberately
// small specifier subset. A verbatim mode that copies the format string
// without substitution is retained for embeddings that depended on the
// original placeholder behavior.
package mem
