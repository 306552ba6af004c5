package bitwise

// Unsigned covers the integer widths the page format stores flags and
// continuation bits in.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

func Unset[T Unsigned](n T, k int) T {
	return n &^ (1 << k) // AND NOT
}

func Set[T Unsigned](n T, k int) T {
	return n | (1 << k) // OR
}

// Low returns the k least significant bits of n.
func Low[T Unsigned](n T, k int) T {
	return n & (1<<k - 1)
}

func IsSet[T Unsigned](n T, k int) bool {
	return n&(1<<k) > 0
}
