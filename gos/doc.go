// Package gos generates Group Of Segments (GOS) payloads.
//
// A GOS payload re-encodes one segmented glyph mapping table of a font in a
// compact bit-packed layout. Six type ids are defined:
//
//	Type | Source                     | Fields per entry                 | Widths
//	-----|----------------------------|----------------------------------|----------
//	2    | cmap format 12             | Δ start code, length, Δ glyph id | 3, 2, 3
//	3    | cmap format 12             | Δ start code, length, glyph id   | 5, 3, 16
//	4    | cmap format 4 + format 12  | format 12 groups per segment     | 2
//	5    | cmap format 12             | start code, length, glyph id     | raw u32
//	6    | CFF charset format 2       | Δ first, Δ nLeft                 | 5, 3
//	7    | CFF charset format 1       | Δ first, Δ nLeft                 | 5, 3
//
// Fixed-width fields use the all-ones escape (AOE): a value that does not fit
// is written as an all-ones field and its number-of-nibbles (NoN) encoding is
// appended to a secondary stream. A payload is laid out as:
//
//	+----------------+------------------------+--------------------------+
//	| header         | primary stream         | secondary stream         |
//	| 3 or 7 bytes   | fields, byte-aligned   | NoN escapes, byte-aligned|
//	+----------------+------------------------+--------------------------+
//
// Type 5 has no secondary stream; its entries are 12 raw bytes each. Charset
// payloads start with the 4-byte absolute file offset of the charset, see
// section.GOSHeader.
//
// Types 6 and 7 share one generator: the charset format found in the font
// decides which id is written, regardless of which of the two was requested.
package gos
