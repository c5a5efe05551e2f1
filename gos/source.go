package gos

import (
	"github.com/arloliu/cmapgos/format"
	"github.com/arloliu/cmapgos/sfnt"
)

// Source provides the font data the generators read.
//
// *sfnt.Font implements Source.
type Source interface {
	// CFFCharset locates the charset of the CFF table.
	CFFCharset() (sfnt.CFFCharset, error)
	// NumGlyphs returns the glyph count of the font.
	NumGlyphs() (int, error)
	// Uint8At reads a byte at an absolute file offset.
	Uint8At(off int) (uint8, error)
	// Uint16At reads a big-endian uint16 at an absolute file offset.
	Uint16At(off int) (uint16, error)
	// CMapFormat12 returns the format 12 subtable of the given encoding record.
	CMapFormat12(platformID, encodingID uint16) (*sfnt.CMap12, error)
	// CMapFormat4 returns the format 4 subtable of the given encoding record.
	CMapFormat4(platformID, encodingID uint16) (*sfnt.CMap4, error)
}

var _ Source = (*sfnt.Font)(nil)

// Subtable identifies a cmap subtable by its encoding record.
type Subtable struct {
	PlatformID uint16
	EncodingID uint16
}

// Config selects the cmap subtables the generators read.
type Config struct {
	// CMap12 is the encoding record of the format 12 subtable, (3, 10) by default.
	CMap12 Subtable
	// CMap4 is the encoding record of the format 4 subtable, (3, 1) by default.
	CMap4 Subtable
}

// DefaultConfig returns the configuration for Windows Unicode subtables.
func DefaultConfig() Config {
	return Config{
		CMap12: Subtable{PlatformID: sfnt.PlatformWindows, EncodingID: sfnt.EncodingUnicodeFull},
		CMap4:  Subtable{PlatformID: sfnt.PlatformWindows, EncodingID: sfnt.EncodingUnicodeBMP},
	}
}

// Result describes a generated payload.
type Result struct {
	// Type is the type id written in the header. For charset payloads it
	// reflects the charset format of the font.
	Type format.GOSType
	// Entries is the entry count written in the header.
	Entries int
	// Escapes is the number of fields carried in the secondary stream.
	Escapes int
	// Size is the payload size in bytes.
	Size int
}
