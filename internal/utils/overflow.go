package utils

import "fmt"

// MaxArrayElements caps the element count of a single mesh axis or variable
// array. Dimension fields come straight from the file, so a corrupted block
// header must not be allowed to size an allocation.
const MaxArrayElements = 1 << 31

// ElementCount multiplies the per-axis dimensions of an array block,
// rejecting negative sizes and products that exceed MaxArrayElements.
func ElementCount(dims []int) (int, error) {
	n := 1
	for i, d := range dims {
		if d < 0 {
			return 0, fmt.Errorf("negative dimension %d at axis %d", d, i)
		}
		if d > 0 && n > MaxArrayElements/d {
			return 0, fmt.Errorf("array size overflow at axis %d: dimensions %v", i, dims)
		}
		n *= d
	}
	return n, nil
}
