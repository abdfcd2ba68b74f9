package mathx

// RoundDiv returns (a + b/2) / b, classic rounding for positive values.
func RoundDiv[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b/2) / b
}

// MapU16 maps x from [inMin, inMax] to [outMin, outMax] with 32-bit
// intermediates, clamping x to the input range first. Used to rescale
// 12-bit ADC counts to other converter widths.
func MapU16(x, inMin, inMax, outMin, outMax uint16) uint16 {
	if inMax == inMin {
		return outMin
	}
	if x < inMin {
		return outMin
	}
	if x > inMax {
		return outMax
	}
	num := uint32(x-inMin) * uint32(outMax-outMin)
	den := uint32(inMax - inMin)
	return uint16(uint32(outMin) + num/den)
}

// LerpU16 interpolates between a and b with t in Q16 ([0..65535]).
func LerpU16(a, b, t uint16) uint16 {
	da := int32(b) - int32(a)
	res := int32(a) + (da*int32(t))/65535
	if res < 0 {
		return 0
	}
	if res > 65535 {
		return 65535
	}
	return uint16(res)
}
