// Package resdata reads and writes reservoir simulation keyword files.
//
// Grid, init, restart and summary output all share one container format:
// a flat sequence of keywords, each a fixed-width eight character name,
// an element type and an array of values. Two layouts exist. The binary
// layout frames every record with 4-byte length markers and splits large
// arrays into blocks; the formatted layout is the same content as ASCII.
//
// # Reading
//
// A [Decoder] reads keywords one at a time and detects the layout and
// byte order from the first bytes of the stream:
//
//	dec := resdata.NewDecoder(r)
//	for kw, err := range dec.Records() {
//		if err != nil {
//			return err
//		}
//		fmt.Println(kw.Name(), kw.Type(), kw.Len())
//	}
//
// [Open] and [ReadFile] do the same for files on disk and transparently
// decompress gzip, zstd and snappy streams. A [Store] indexes keywords by
// name and occurrence and splits restart files into report steps. An
// [Index] gives random access to single keywords of a binary file.
//
// # Writing
//
// An [Encoder] writes keywords in either layout. Binary output is stable:
// decoding and re-encoding a file reproduces it byte for byte.
//
// # Errors
//
// Malformed input yields a [*FormatError] carrying the byte offset and the
// keyword being read. It wraps one of the sentinel errors such as
// [ErrIncompleteRecord] or [ErrCorruptRecord], so errors.Is works on it.
package resdata
