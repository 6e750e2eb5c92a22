package library

// Next returns the index after i in a cyclic playlist of length n.
func Next(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i + 1) % n
}

// Previous returns the index before i. It clamps at zero instead of
// wrapping to the last track.
func Previous(i int) int {
	return max(i-1, 0)
}
