package section

import (
	"fmt"
	"math"

	"github.com/arloliu/cmapgos/endian"
	"github.com/arloliu/cmapgos/errs"
	"github.com/arloliu/cmapgos/format"
)

const (
	// HeaderSize is the size of a cmap GOS header.
	HeaderSize = 3
	// CharsetHeaderSize is the size of a CFF charset GOS header.
	CharsetHeaderSize = 7
	// ContainerHeaderSize is the size of the container count prefix.
	ContainerHeaderSize = 1

	// MaxEntryCount is the largest entry count the 2-byte header field holds.
	MaxEntryCount = math.MaxUint16
	// MaxPayloadCount is the largest payload count a container holds.
	MaxPayloadCount = math.MaxUint8
)

// GOSHeader is the header at the start of every GOS payload.
type GOSHeader struct {
	// CharsetOffset is the absolute file offset of the CFF charset table.
	// It is only serialized for charset types.
	CharsetOffset uint32
	// EntryCount is the number of entries that follow.
	EntryCount uint16
	// Type is the GOS type id.
	Type format.GOSType
}

// NewGOSHeader creates a header for a payload of the given type and entry count.
//
// Returns:
//   - GOSHeader: the header
//   - error: ErrUnknownGOSType for undefined types, ErrTooManySegments if count exceeds MaxEntryCount
func NewGOSHeader(t format.GOSType, count int) (GOSHeader, error) {
	if !t.Valid() {
		return GOSHeader{}, fmt.Errorf("%w: %d", errs.ErrUnknownGOSType, t)
	}
	if count < 0 || count > MaxEntryCount {
		return GOSHeader{}, fmt.Errorf("%w: %d entries (max=%d)", errs.ErrTooManySegments, count, MaxEntryCount)
	}

	return GOSHeader{Type: t, EntryCount: uint16(count)}, nil
}

// Size returns the serialized size of the header in bytes.
func (h GOSHeader) Size() int {
	if h.Type.IsCharset() {
		return CharsetHeaderSize
	}

	return HeaderSize
}

// AppendTo serializes the header and appends it to dst.
func (h GOSHeader) AppendTo(dst []byte, engine endian.EndianEngine) []byte {
	if h.Type.IsCharset() {
		dst = engine.AppendUint32(dst, h.CharsetOffset)
	}
	dst = append(dst, byte(h.Type))

	return engine.AppendUint16(dst, h.EntryCount)
}

// Bytes serializes the header into a new byte slice.
func (h GOSHeader) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, h.Size()), endian.GetBigEndianEngine())
}

// ParseGOSHeader parses a GOS header from the start of data.
//
// charset selects the 7-byte charset layout; the type byte is validated
// against the layout.
//
// Returns:
//   - GOSHeader: parsed header
//   - error: ErrInvalidFontData on short input, ErrUnknownGOSType on a bad type byte
func ParseGOSHeader(data []byte, charset bool) (GOSHeader, error) {
	engine := endian.GetBigEndianEngine()

	h := GOSHeader{}
	if charset {
		if len(data) < CharsetHeaderSize {
			return GOSHeader{}, fmt.Errorf("%w: charset header needs %d bytes, have %d",
				errs.ErrInvalidFontData, CharsetHeaderSize, len(data))
		}
		h.CharsetOffset = engine.Uint32(data[0:4])
		data = data[4:]
	} else if len(data) < HeaderSize {
		return GOSHeader{}, fmt.Errorf("%w: header needs %d bytes, have %d",
			errs.ErrInvalidFontData, HeaderSize, len(data))
	}

	h.Type = format.GOSType(data[0])
	if !h.Type.Valid() || h.Type.IsCharset() != charset {
		return GOSHeader{}, fmt.Errorf("%w: %d", errs.ErrUnknownGOSType, data[0])
	}
	h.EntryCount = engine.Uint16(data[1:3])

	return h, nil
}
