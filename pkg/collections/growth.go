package collections

// MaxArrayLength is the single-allocation cap for non-huge collections,
// mirroring the platform's largest addressable array size (2^28 elements).
const MaxArrayLength = 1 << 28

// minSlack is the floor on the number of extra elements added by Oversize,
// so tiny arrays still get breathing room instead of reallocating on every
// single append.
const minSlack = 3

// Oversize computes a new capacity for minTargetSize elements of width
// bytesPerElement (which must be a power of two), adding ~12.5% amortized
// growth slack and rounding up to the platform alignment for that element
// width. The result is capped at MaxArrayLength.
//
// Negative sizes are rejected by returning 0, matching requesting 0.
func Oversize(minTargetSize int, bytesPerElement int) int {
	size := oversizeHuge(minTargetSize, bytesPerElement)
	if size > MaxArrayLength {
		size = MaxArrayLength
	}
	return size
}

// OversizeHuge is Oversize without the MaxArrayLength cap, used by the huge
// paged collections whose total capacity routinely exceeds a single Go
// slice's limit (they just don't exceed it in any one page).
func OversizeHuge(minTargetSize int, bytesPerElement int) int {
	return oversizeHuge(minTargetSize, bytesPerElement)
}

func oversizeHuge(minTargetSize int, bytesPerElement int) int {
	if minTargetSize < 0 {
		return 0
	}
	if minTargetSize == 0 {
		return 0
	}

	slack := minTargetSize / 8
	if slack < minSlack {
		slack = minSlack
	}

	newSize := minTargetSize + slack

	// Round up to the nearest multiple of the alignment implied by the
	// element width, so consecutive elements land on favourable
	// cache/word boundaries.
	alignment := alignmentFor(bytesPerElement)
	if alignment > 1 {
		remainder := newSize % alignment
		if remainder != 0 {
			newSize += alignment - remainder
		}
	}

	return newSize
}

// alignmentFor picks a rounding granularity from an element width. Byte- and
// bool-sized elements don't need rounding; everything else rounds to a
// small power of two that keeps pages cache-friendly without overshooting.
func alignmentFor(bytesPerElement int) int {
	switch {
	case bytesPerElement <= 1:
		return 1
	case bytesPerElement <= 4:
		return 8
	default:
		return 4
	}
}
