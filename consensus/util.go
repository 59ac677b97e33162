package consensus

import "math"

// addUint64 sums a and b, reporting an error instead of wrapping if the
// sum would overflow uint64.
func addUint64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, txerr(EncodingOverflow, "uint64 addition overflow")
	}
	return a + b, nil
}
