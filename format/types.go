package format

import "fmt"

type (
	GOSType         uint8
	CompressionType uint8
)

const (
	TypeCMap12DeltaGID GOSType = 0x2 // TypeCMap12DeltaGID encodes cmap 12 with delta start codes and delta glyph ids.
	TypeCMap12Delta    GOSType = 0x3 // TypeCMap12Delta encodes cmap 12 with delta start codes and 16-bit glyph ids.
	TypeCMap4          GOSType = 0x4 // TypeCMap4 encodes cmap 4 as format 12 segment counts.
	TypeCMap12Raw      GOSType = 0x5 // TypeCMap12Raw stores cmap 12 groups uncompressed.
	TypeCharset2       GOSType = 0x6 // TypeCharset2 encodes a CFF charset in format 2.
	TypeCharset1       GOSType = 0x7 // TypeCharset1 encodes a CFF charset in format 1.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// GOSTypes lists every GOS type in ascending id order.
var GOSTypes = []GOSType{
	TypeCMap12DeltaGID,
	TypeCMap12Delta,
	TypeCMap4,
	TypeCMap12Raw,
	TypeCharset2,
	TypeCharset1,
}

// ParseGOSType converts a numeric type id to a GOSType.
//
// Returns an error if the id does not name a known type.
func ParseGOSType(id int) (GOSType, error) {
	t := GOSType(id) //nolint:gosec // G115: validated below
	if id < 0 || id > 0xFF || !t.Valid() {
		return 0, fmt.Errorf("unknown GOS type id %d", id)
	}

	return t, nil
}

// Valid reports whether t is one of the defined GOS types.
func (t GOSType) Valid() bool {
	switch t {
	case TypeCMap12DeltaGID, TypeCMap12Delta, TypeCMap4, TypeCMap12Raw, TypeCharset2, TypeCharset1:
		return true
	default:
		return false
	}
}

// IsCharset reports whether t is produced from a CFF charset.
func (t GOSType) IsCharset() bool {
	return t == TypeCharset2 || t == TypeCharset1
}

func (t GOSType) String() string {
	switch t {
	case TypeCMap12DeltaGID:
		return "CMap12DeltaGID"
	case TypeCMap12Delta:
		return "CMap12Delta"
	case TypeCMap4:
		return "CMap4"
	case TypeCMap12Raw:
		return "CMap12Raw"
	case TypeCharset2:
		return "Charset2"
	case TypeCharset1:
		return "Charset1"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType converts a codec name ("none", "zstd", "s2", "lz4") to a CompressionType.
func ParseCompressionType(name string) (CompressionType, error) {
	switch name {
	case "none", "None":
		return CompressionNone, nil
	case "zstd", "Zstd":
		return CompressionZstd, nil
	case "s2", "S2":
		return CompressionS2, nil
	case "lz4", "LZ4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", name)
	}
}
