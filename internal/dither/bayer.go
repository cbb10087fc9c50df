package dither

import "fmt"

// bayerBase is the order-0 matrix, row-major.
var bayerBase = []int{
	0, 2,
	3, 1,
}

// BayerSize returns the side length 2^(n+1) of the order-n matrix.
func BayerSize(n int) int {
	return 2 << n
}

// BayerMatrix builds the order-n Bayer threshold matrix in row-major order.
// The result has BayerSize(n)² cells holding each value of [0, 4^(n+1)) once.
//
// Each order tiles the previous one four times, scaling it by 4 and adding a
// per-quadrant offset that repeats the base pattern: top-left 0, top-right 2,
// bottom-left 3, bottom-right 1.
func BayerMatrix(n int) []int {
	if n < 0 {
		panic(fmt.Sprintf("dither: negative bayer order %d", n))
	}
	if n == 0 {
		return append([]int(nil), bayerBase...)
	}

	prev := BayerMatrix(n - 1)
	half := BayerSize(n - 1)
	size := 2 * half

	m := make([]int, size*size)
	for i := range m {
		x, y := i%size, i/size
		offset := bayerBase[(y/half)*2+x/half]
		m[i] = 4*prev[(y%half)*half+x%half] + offset
	}
	return m
}
