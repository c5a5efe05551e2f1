// Package encoding provides the number encoders and bit streams behind the
// Group Of Segments (GOS) formats.
//
// # Building Blocks
//
//   - Delta: difference sequence, out[0] = in[0], out[i] = in[i] - in[i-1]
//   - NibbleBin: binary form padded to whole nibbles (16 -> "00010000")
//   - NoN: self-describing signed number, one prefix nibble then the magnitude
//   - AOE: fixed-width field with the all-ones pattern reserved as escape
//   - BitStream: MSB-first growable bit buffer with explicit byte alignment
//   - FieldWriter: AOE fields into a primary stream, escapes into a secondary stream
//
// # NoN Prefix
//
// The prefix nibble carries both the magnitude width k (in nibbles) and the sign:
//
//	0 <= prefix < 8   non-negative, k = prefix + 1
//	8 <= prefix < 16  negative,     k = prefix - 7
//
// Magnitudes wider than eight nibbles cannot be described and are rejected
// with errs.ErrNibbleOverflow.
//
// # Escape Streams
//
// A GOS entry is a run of fixed-width fields. A field value that is negative
// or does not fit below the all-ones pattern is written as all ones, and the
// real value is appended to the secondary stream in NoN form. Decoders recover
// escaped values by counting all-ones fields in encounter order:
//
//	w := encoding.NewFieldWriter()
//	defer w.Finish()
//
//	_ = w.Write(3, 5)   // primary: 00011
//	_ = w.Write(40, 5)  // primary: 11111, secondary: 0001 00101000
//	payload := w.AppendTo(nil)
package encoding
