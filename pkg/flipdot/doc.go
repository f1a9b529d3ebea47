// Package flipdot encodes a monochrome frame buffer into the serial protocol
// spoken by Hanover flip-dot display controllers.
//
// A frame on the wire looks like this:
//
//	0x02 | addr+17 | (w*h)/8 | pixels ... | 0x03 | checksum
//	raw  |  hex    |   hex   |    hex     | raw  |   hex
//
// Every field between the start and end bytes is sent as two uppercase ASCII
// hex digits. The checksum is the two's complement of the sum of all wire
// bytes following the start byte, up to and including the end byte.
//
// Pixels are stored column-major (index x*height+y), eight per byte, least
// significant bit first.
package flipdot
