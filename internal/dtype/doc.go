// Package dtype provides keyword element types and conversion between raw
// keyword payloads and Go values.
//
// Every keyword carries a four character type tag that fixes the element
// kind and its on-disk width:
//
//	Tag   | Kind      | Width | Go type
//	------|-----------|-------|---------
//	INTE  | Int       | 4     | int32
//	REAL  | Float     | 4     | float32
//	DOUB  | Double    | 8     | float64
//	LOGI  | Bool      | 4     | bool
//	CHAR  | Char      | 8     | string
//	C0nn  | String    | nn    | string
//	MESS  | Message   | 0     | (no payload)
//
// Payloads are kept as raw element bytes in the file's canonical
// big-endian order. Keeping the raw bytes means a payload written back out
// is byte-identical to what was read, including padding inside strings and
// non-canonical logical values.
//
// # Blocks and Columns
//
// Binary files split payloads into blocks of at most [Type.BlockSize]
// elements, 1000 for numeric kinds and 105 for strings. Formatted files use
// the same blocks and print [Type.Columns] elements per line.
//
// # Key Functions
//
//   - [Parse]: Parses a four character type tag
//   - [Encode]: Converts a Go slice to raw payload bytes
//   - [Int32s], [Float32s], [Float64s], [Bools], [Strings]: Convert raw
//     payload bytes to Go slices
//   - [GoType]: Returns the reflect.Type for a keyword type
package dtype
