package dicomio

// signedToUnsigned maps two's complement samples of bitsStored bits from
// [-2^(n-1), 2^(n-1)-1] onto [0, 2^n-1]. Bits above bitsStored are ignored.
// The result is a new slice.
func signedToUnsigned(data []byte, bitsStored int) []byte {
	mask := int32(1)<<bitsStored - 1
	offset := int32(1) << (bitsStored - 1)

	out := make([]byte, len(data))
	for i, b := range data {
		val := int32(b) & mask
		if val >= offset {
			val -= 1 << bitsStored
		}
		out[i] = byte(val + offset)
	}
	return out
}
