package core

import "strconv"

// FormatRupiah renders an amount with period-grouped thousands and no
// decimal places, e.g. 1500000 -> "1.500.000". Negative amounts keep their
// sign: -20000 -> "-20.000".
func FormatRupiah(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	if neg {
		return "-" + string(out)
	}
	return string(out)
}
