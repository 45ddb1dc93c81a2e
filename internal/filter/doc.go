// Package filter implements the stream compression filters applied to
// whole keyword files.
//
// Simulators never compress their own output, but archived result files
// are routinely stored compressed. A filter wraps a reader or writer so
// the keyword codec sees the plain record stream.
//
// # Supported Filters
//
//   - gzip via [Gzip], detected by the 1f 8b magic.
//   - Zstandard via [Zstd], detected by the 28 b5 2f fd frame magic.
//   - Snappy framing via [Snappy], detected by its stream identifier chunk.
//
// [Detect] inspects the first bytes of a stream and returns the matching
// filter, or nil when the stream is not compressed.
package filter
