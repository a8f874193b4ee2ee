package libres

// verCompare orders filenames the way GNU version sort does: runs of digits
// compare by numeric value, everything else compares bytewise with letters
// ranking before punctuation and '~' before anything, including end of
// string. This makes "libboost_thread.so.1.49.0" greater than
// "libboost_thread.so.1.9.0".
func verCompare(a, b string) int {
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		// Non-digit run.
		for (i < len(a) && !digit(a[i])) || (j < len(b) && !digit(b[j])) {
			var ca, cb byte
			if i < len(a) {
				ca = a[i]
			}
			if j < len(b) {
				cb = b[j]
			}
			if d := rank(ca) - rank(cb); d != 0 {
				return d
			}
			i++
			j++
		}

		// Digit run: longer run of significant digits is the larger
		// number; equal lengths compare on the first differing digit.
		for i < len(a) && a[i] == '0' {
			i++
		}
		for j < len(b) && b[j] == '0' {
			j++
		}
		firstDiff := 0
		for i < len(a) && j < len(b) && digit(a[i]) && digit(b[j]) {
			if firstDiff == 0 {
				firstDiff = int(a[i]) - int(b[j])
			}
			i++
			j++
		}
		if i < len(a) && digit(a[i]) {
			return 1
		}
		if j < len(b) && digit(b[j]) {
			return -1
		}
		if firstDiff != 0 {
			return firstDiff
		}
	}
	return 0
}

// rank maps a byte to its position in version sort order: '~' sorts before
// end of string, digits delimit numeric runs, letters keep their ASCII
// value, and punctuation sorts after letters.
func rank(c byte) int {
	switch {
	case digit(c):
		return 0
	case alpha(c):
		return int(c)
	case c == '~':
		return -1
	case c == 0:
		return 0
	default:
		return int(c) + 256
	}
}

func digit(c byte) bool { return c >= '0' && c <= '9' }

func alpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
