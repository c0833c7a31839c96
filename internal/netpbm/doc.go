// Package netpbm decodes Netpbm bitmaps (PBM) into bitmap grids.
//
// Two variants are supported:
//
//   - P1 (plain): ASCII header and a stream of '0'/'1' pixel symbols. The
//     symbols may be separated by whitespace or run together.
//   - P4 (raw): ASCII header, one whitespace byte, then packed rows of
//     ceil(width/8) bytes, most significant bit first.
//
// In both, 1 is black and is decoded as foreground. Comments start with '#'
// and run to the end of the line.
//
// # Error Handling
//
// Headers declaring more than MaxPixels pixels are rejected as malformed.
//
// Every decoding failure caused by the input (wrong magic number, bad
// dimensions, wrong pixel count, truncated data) is a *FormatError, which
// unwraps to ErrMalformed. I/O failures are returned wrapped as-is.
package netpbm
