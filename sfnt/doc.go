// Package sfnt reads the parts of an SFNT (TrueType or CFF-flavored OpenType)
// font that the group of segments generators consume.
//
// The package exposes explicit raw accessors instead of a decoded font model:
//
//   - CMapFormat12 returns the groups of a format 12 subtable as parallel
//     start code, length and glyph id arrays
//   - CMapFormat4 returns the segments of a format 4 subtable
//   - CFFCharset locates the charset of a CFF table
//   - Uint8At and Uint16At read big-endian integers at absolute file offsets
//
// Only the table directory is read by Parse. A Font is immutable and can be
// shared between goroutines.
package sfnt
