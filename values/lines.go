package values

// Carriage-return and line-feed are both line terminators, individually.
// A run of terminator characters collapses, so terminator runs never
// produce empty lines.

func isLineEnd(c byte) bool {
	return c == '\n' || c == '\r'
}

// SkipLineEnds advances i past any run of line terminators.
func SkipLineEnds(buf []byte, i int) int {
	for i < len(buf) && isLineEnd(buf[i]) {
		i++
	}
	return i
}

// NextLineEnd advances i to the next line terminator or the end of buf.
func NextLineEnd(buf []byte, i int) int {
	for i < len(buf) && !isLineEnd(buf[i]) {
		i++
	}
	return i
}

// Lines splits buf into its newline-delimited segments. The returned slices
// alias buf; no copies are made. A buffer that is empty or consists solely
// of terminator characters yields no segments.
func Lines(buf []byte) [][]byte {
	var lines [][]byte
	for i := SkipLineEnds(buf, 0); i < len(buf); {
		end := NextLineEnd(buf, i)
		lines = append(lines, buf[i:end])
		i = SkipLineEnds(buf, end)
	}
	return lines
}
