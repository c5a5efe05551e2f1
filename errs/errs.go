// Package errs defines the sentinel errors returned by cmapgos packages.
//
// Call sites wrap these errors with additional context using fmt.Errorf and %w,
// so callers should match them with errors.Is:
//
//	data, err := compacter.GenerateGOSTypes(types)
//	if errors.Is(err, errs.ErrIncompatibleTables) {
//	    // font structure cannot be expressed as a type 4 group of segments
//	}
package errs

import "errors"

// Encoding errors.
var (
	// ErrEmptyInput is returned when a sequence that must hold at least one element is empty.
	ErrEmptyInput = errors.New("empty input")
	// ErrNegativeValue is returned when a non-negative integer is required.
	ErrNegativeValue = errors.New("negative value")
	// ErrNibbleOverflow is returned when a magnitude needs more than 8 nibbles,
	// which cannot be described by the single NoN prefix nibble.
	ErrNibbleOverflow = errors.New("nibble count overflow")
	// ErrInvalidBitWidth is returned when a field width is outside 1..64 bits.
	ErrInvalidBitWidth = errors.New("invalid bit width")
)

// Group of segments errors.
var (
	// ErrUnknownGOSType is returned when a type id does not name a GOS generator.
	ErrUnknownGOSType = errors.New("unknown GOS type")
	// ErrTooManySegments is returned when an entry count does not fit the 2-byte header field.
	ErrTooManySegments = errors.New("too many segments")
	// ErrTooManyTypes is returned when a container would hold more than 255 payloads.
	ErrTooManyTypes = errors.New("too many GOS types")
	// ErrIncompatibleTables is returned when cmap format 12 segments straddle a
	// format 4 segment boundary, or the format 4 segments are not walked through.
	ErrIncompatibleTables = errors.New("incompatible cmap tables")
	// ErrInconsistentTables is returned when matched cmap format 4 and format 12
	// segments disagree on coverage or on the glyph mapping mode.
	ErrInconsistentTables = errors.New("inconsistent cmap tables")
)

// Font source errors.
var (
	// ErrInvalidFontData is returned when font bytes are truncated or malformed.
	ErrInvalidFontData = errors.New("invalid font data")
	// ErrMissingTable is returned when a required SFNT table is absent.
	ErrMissingTable = errors.New("missing font table")
	// ErrMissingSubtable is returned when the requested cmap subtable is absent.
	ErrMissingSubtable = errors.New("missing cmap subtable")
	// ErrMultipleFonts is returned when a CFF table holds more than one font.
	ErrMultipleFonts = errors.New("multiple fonts in CFF table")
	// ErrUnsupportedCharset is returned for CFF charsets other than format 1 and 2.
	ErrUnsupportedCharset = errors.New("unsupported CFF charset")
	// ErrOutOfBounds is returned by positioned reads past the end of the font data.
	ErrOutOfBounds = errors.New("read out of bounds")
)

// Measurement errors.
var (
	// ErrRoundTrip is returned when a codec does not restore the payload it compressed.
	ErrRoundTrip = errors.New("compression round trip mismatch")
)
