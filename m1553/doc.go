// Package m1553 provides the core data types of the MIL-STD-1553B dual-redundant
// serial data bus: the 20-bit word, terminal addresses, and bus identification.
//
// MIL-STD-1553B is a synchronous command/response bus linking one Bus Controller
// (BC) to up to 30 Remote Terminals (RTs), with passive Bus Monitors allowed.
// All traffic is carried in 20-bit words:
//
//   - 2 synchronization bits
//   - 1 start bit (always 0)
//   - 16 data bits
//   - 1 parity bit (odd parity over start bit + data bits)
//
// A [Word] stores the 20-bit pattern in the low bits of a uint32, LSB first:
// bit 0 is the start bit, bits 1–16 carry the data field, bit 17 the parity
// bit, and bits 18–19 the sync pattern. The [WordType] tag attached at
// construction determines how the 16 data bits are interpreted; it is metadata
// supplied by protocol context and is never recovered from the bit pattern.
//
// Higher protocol layers build on this package: the manchester package
// performs line coding, the message package maps word data fields to
// command/status structures, the parser package assembles transactions, and
// the controller package tracks per-terminal health.
package m1553
