package comm

import "github.com/snksoft/crc"

// CRC32CKSUM is CRC-32/CKSUM, the checksum used in frames.
var CRC32CKSUM = &crc.Parameters{
	Width:      32,
	Polynomial: 0x04c11db7,
	ReflectIn:  false,
	ReflectOut: false,
	Init:       0,
	FinalXor:   0xffffffff,
}

var cksumTable = crc.NewTable(CRC32CKSUM)

// Checksum calculates the CRC-32/CKSUM of p.
func Checksum(p []byte) uint32 {
	return uint32(cksumTable.CalculateCRC(p))
}
