package core

const hexDigits = "0123456789ABCDEF"

// hex32 formats a register value as 0xXXXXXXXX (always 8 digits)
func hex32(v uint32) string {
	var buf [10]byte
	buf[0] = '0'
	buf[1] = 'x'
	for i := 9; i >= 2; i-- {
		buf[i] = hexDigits[v&0xF]
		v >>= 4
	}
	return string(buf[:])
}
