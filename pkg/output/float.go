package output

import "math"

// floatBits converts a float64 channel to float32 bits for storage
func floatBits(v float64) uint32 {
	return math.Float32bits(float32(v))
}

// bitsFloat converts stored float32 bits back to a float64 channel
func bitsFloat(bits uint32) float64 {
	return float64(math.Float32frombits(bits))
}
