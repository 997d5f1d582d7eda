// Package cobs implements Consistent Overhead Byte Stuffing with 0x00 as
// the frame sentinel.
package cobs

import "errors"

// Sentinel is the frame boundary byte. It never appears in encoded data.
const Sentinel byte = 0x00

var (
	// ErrShortBuffer indicates the destination can't hold the encoded bytes.
	ErrShortBuffer = errors.New("cobs: short buffer")
	// ErrZeroByte indicates a sentinel byte inside encoded data.
	ErrZeroByte = errors.New("cobs: unexpected zero byte")
	// ErrTruncated indicates a code byte points past the end of data.
	ErrTruncated = errors.New("cobs: truncated block")
)

// MaxEncodedLen returns the worst-case encoded length of n source bytes,
// including the trailing sentinel.
func MaxEncodedLen(n int) int {
	return n + n/254 + 2
}

// Encode encodes src into dst without the sentinel and returns the number
// of bytes written.
func Encode(dst, src []byte) (int, error) {
	if len(dst) < MaxEncodedLen(len(src))-1 {
		return 0, ErrShortBuffer
	}
	code, codeAt, w := byte(1), 0, 1
	for _, b := range src {
		if b == Sentinel {
			dst[codeAt] = code
			code, codeAt = 1, w
			w++
			continue
		}
		dst[w] = b
		w++
		if code++; code == 0xff {
			dst[codeAt] = code
			code, codeAt = 1, w
			w++
		}
	}
	dst[codeAt] = code
	return w, nil
}

// Decode decodes buf in place and returns the length of decoded data.
// buf must not include the trailing sentinel.
func Decode(buf []byte) (int, error) {
	r, w := 0, 0
	for r < len(buf) {
		code := buf[r]
		if code == Sentinel {
			return 0, ErrZeroByte
		}
		r++
		n := int(code) - 1
		if r+n > len(buf) {
			return 0, ErrTruncated
		}
		for _, b := range buf[r : r+n] {
			if b == Sentinel {
				return 0, ErrZeroByte
			}
			// w is always behind r.
			buf[w] = b
			w++
		}
		r += n
		if code != 0xff && r < len(buf) {
			buf[w] = Sentinel
			w++
		}
	}
	return w, nil
}
