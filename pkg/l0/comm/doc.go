// Package comm provides L0 protocol support.
package comm

// L0 protocol is communicated between L0 firmware and L1 controller
// over a peer-to-peer serial link (115200 baud, 8N1).
//
// Every value travels in its own frame:
//
//   COBS( serialize(value) || le_u32(crc32(serialize(value))) ) || 0x00
//
// The serialized form is a one byte variant discriminant followed by the
// fields in declaration order, u32 and f32 as 4 bytes little-endian with
// no padding. The CRC is CRC-32/CKSUM. COBS removes every 0x00 from the
// frame body so 0x00 alone marks the end of a frame, no length prefix is
// needed, and a receiver resynchronizes on the next 0x00 after garbage.
//
// The host (Client) sends one Command and blocks for exactly one Response.
// Replies are matched by ordering only. A failed exchange is retried up to
// MaxRetries attempts.
//
// The device (FIFO) assembles frames one byte at a time with Parser, hands
// decoded commands to a Dispatcher and queues the encoded reply for a
// separate writer. A corrupt frame is answered with ParseError.
//
// Producer: L0 firmware
// Consumer: L1 controller
