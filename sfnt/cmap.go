package sfnt

import (
	"fmt"

	"github.com/tdewolff/parse/v2"

	"github.com/arloliu/cmapgos/errs"
)

// Platform and encoding ids of the Windows Unicode cmap subtables.
const (
	PlatformWindows       uint16 = 3
	EncodingUnicodeBMP    uint16 = 1
	EncodingUnicodeFull   uint16 = 10
	cmapEncodingRecordLen        = 8
)

// CMap12 holds the groups of a cmap format 12 subtable as parallel arrays.
//
// Lengths[i] is the number of code points in group i, EndCharCode - StartCharCode + 1.
type CMap12 struct {
	StartCodes []uint32
	Lengths    []uint32
	GlyphIDs   []uint32
}

// Len returns the number of groups.
func (c *CMap12) Len() int {
	return len(c.StartCodes)
}

// CMap4 holds the segments of a cmap format 4 subtable as parallel arrays.
//
// The last segment is the mandatory 0xFFFF terminator.
type CMap4 struct {
	StartCodes     []uint16
	EndCodes       []uint16
	IDDeltas       []int16
	IDRangeOffsets []uint16
	GlyphIDArray   []uint16
}

// Len returns the number of segments, including the terminator.
func (c *CMap4) Len() int {
	return len(c.StartCodes)
}

// CMapFormat12 decodes the format 12 subtable registered for (platformID, encodingID).
//
// Returns ErrMissingSubtable if no such subtable exists or it is not in format 12.
func (f *Font) CMapFormat12(platformID, encodingID uint16) (*CMap12, error) {
	r, err := f.cmapSubtable(platformID, encodingID, 12)
	if err != nil {
		return nil, err
	}

	if r.Len() < 14 {
		return nil, fmt.Errorf("%w: cmap format 12 header truncated", errs.ErrInvalidFontData)
	}
	_ = r.ReadUint16() // reserved
	_ = r.ReadUint32() // length
	_ = r.ReadUint32() // language
	numGroups := r.ReadUint32()
	if uint64(r.Len()) < uint64(numGroups)*12 {
		return nil, fmt.Errorf("%w: cmap format 12 has %d groups, data truncated", errs.ErrInvalidFontData, numGroups)
	}

	c := &CMap12{
		StartCodes: make([]uint32, numGroups),
		Lengths:    make([]uint32, numGroups),
		GlyphIDs:   make([]uint32, numGroups),
	}
	for i := range numGroups {
		start := r.ReadUint32()
		end := r.ReadUint32()
		gid := r.ReadUint32()
		if end < start {
			return nil, fmt.Errorf("%w: cmap format 12 group %d ends before it starts", errs.ErrInvalidFontData, i)
		}
		c.StartCodes[i] = start
		c.Lengths[i] = end - start + 1
		c.GlyphIDs[i] = gid
	}

	return c, nil
}

// CMapFormat4 decodes the format 4 subtable registered for (platformID, encodingID).
//
// Returns ErrMissingSubtable if no such subtable exists or it is not in format 4.
func (f *Font) CMapFormat4(platformID, encodingID uint16) (*CMap4, error) {
	r, err := f.cmapSubtable(platformID, encodingID, 4)
	if err != nil {
		return nil, err
	}

	if r.Len() < 12 {
		return nil, fmt.Errorf("%w: cmap format 4 header truncated", errs.ErrInvalidFontData)
	}
	length := uint32(r.ReadUint16())
	_ = r.ReadUint16() // language
	segCount := uint32(r.ReadUint16() / 2)
	_ = r.ReadUint16() // searchRange
	_ = r.ReadUint16() // entrySelector
	_ = r.ReadUint16() // rangeShift

	const headerLen = 14
	arraysLen := 8*segCount + 2
	if segCount == 0 || length < headerLen+arraysLen || r.Len() < arraysLen {
		return nil, fmt.Errorf("%w: cmap format 4 with %d segments is truncated", errs.ErrInvalidFontData, segCount)
	}

	c := &CMap4{
		StartCodes:     make([]uint16, segCount),
		EndCodes:       make([]uint16, segCount),
		IDDeltas:       make([]int16, segCount),
		IDRangeOffsets: make([]uint16, segCount),
	}
	for i := range segCount {
		c.EndCodes[i] = r.ReadUint16()
	}
	_ = r.ReadUint16() // reservedPad
	for i := range segCount {
		c.StartCodes[i] = r.ReadUint16()
	}
	for i := range segCount {
		c.IDDeltas[i] = int16(r.ReadUint16()) //nolint:gosec // G115: idDelta is stored as two's complement
	}
	for i := range segCount {
		c.IDRangeOffsets[i] = r.ReadUint16()
	}

	glyphIDCount := (length - headerLen - arraysLen) / 2
	glyphIDCount = min(glyphIDCount, r.Len()/2)
	c.GlyphIDArray = make([]uint16, glyphIDCount)
	for i := range glyphIDCount {
		c.GlyphIDArray[i] = r.ReadUint16()
	}

	return c, nil
}

// cmapSubtable positions a reader just after the format field of the requested subtable.
func (f *Font) cmapSubtable(platformID, encodingID, format uint16) (*parse.BinaryReader, error) {
	b, _, err := f.Table("cmap")
	if err != nil {
		return nil, err
	}
	if len(b) < 4 {
		return nil, fmt.Errorf("%w: cmap table too short", errs.ErrInvalidFontData)
	}

	r := parse.NewBinaryReader(b)
	_ = r.ReadUint16() // version
	numTables := uint32(r.ReadUint16())
	if r.Len() < numTables*cmapEncodingRecordLen {
		return nil, fmt.Errorf("%w: cmap encoding records truncated", errs.ErrInvalidFontData)
	}

	for range numTables {
		pid := r.ReadUint16()
		eid := r.ReadUint16()
		offset := r.ReadUint32()
		if pid != platformID || eid != encodingID {
			continue
		}
		if offset > uint32(len(b))-2 {
			return nil, fmt.Errorf("%w: cmap subtable (%d, %d) offset %d out of range",
				errs.ErrInvalidFontData, pid, eid, offset)
		}

		sub := parse.NewBinaryReader(b[offset:])
		if got := sub.ReadUint16(); got != format {
			return nil, fmt.Errorf("%w: (%d, %d) is format %d, want format %d",
				errs.ErrMissingSubtable, pid, eid, got, format)
		}

		return sub, nil
	}

	return nil, fmt.Errorf("%w: no subtable for platform %d encoding %d", errs.ErrMissingSubtable, platformID, encodingID)
}
