package gos

import (
	"fmt"

	"github.com/arloliu/cmapgos/encoding"
	"github.com/arloliu/cmapgos/errs"
	"github.com/arloliu/cmapgos/format"
	"github.com/arloliu/cmapgos/section"
	"github.com/arloliu/cmapgos/sfnt"
)

const type4CountWidth = 2

// Match is a cmap format 4 segment together with the format 12 groups it contains.
//
// The groups are contiguous: First is the index of the first group and Count
// the number of groups.
type Match struct {
	Segment int
	First   int
	Count   int
}

// MatchSegments assigns every cmap format 12 group to the format 4 segment
// that contains it.
//
// Both tables are walked in ascending code point order. The terminating 0xFFFF
// segment of the format 4 table is ignored, as are format 12 groups beyond the
// last format 4 segment.
//
// Returns:
//   - []Match: matched format 4 segments in ascending order
//   - error: ErrEmptyInput if either table is empty, ErrIncompatibleTables if a
//     group straddles a segment boundary or the segments are not walked
//     through, ErrInconsistentTables if a matched segment disagrees with its
//     groups on coverage or mapping mode
func MatchSegments(c4 *sfnt.CMap4, c12 *sfnt.CMap12) ([]Match, error) {
	n4 := c4.Len() - 1
	n12 := c12.Len()
	if n4 <= 0 {
		return nil, fmt.Errorf("%w: cmap format 4 has no segments", errs.ErrEmptyInput)
	}
	if n12 == 0 {
		return nil, fmt.Errorf("%w: cmap format 12 has no groups", errs.ErrEmptyInput)
	}

	var matches []Match
	seg, group := 0, 0
	for group < n12 && seg < n4 {
		gStart := int64(c12.StartCodes[group])
		gEnd := gStart + int64(c12.Lengths[group]) - 1
		sStart := int64(c4.StartCodes[seg])
		sEnd := int64(c4.EndCodes[seg])

		switch {
		case gStart >= sStart && gEnd <= sEnd:
			if len(matches) > 0 && matches[len(matches)-1].Segment == seg {
				matches[len(matches)-1].Count++
			} else {
				matches = append(matches, Match{Segment: seg, First: group, Count: 1})
			}
			group++
		case gStart > sEnd:
			seg++
		default:
			return nil, fmt.Errorf("%w: group %d [%#x, %#x] overlaps segment %d [%#x, %#x]",
				errs.ErrIncompatibleTables, group, gStart, gEnd, seg, sStart, sEnd)
		}
	}

	// the walk may stop on the last segment, or the one before the terminator
	if seg < n4-2 {
		return nil, fmt.Errorf("%w: walk stopped at segment %d of %d",
			errs.ErrIncompatibleTables, seg, n4)
	}

	for _, m := range matches {
		if err := checkMatch(c4, c12, m); err != nil {
			return nil, err
		}
	}

	return matches, nil
}

func checkMatch(c4 *sfnt.CMap4, c12 *sfnt.CMap12, m Match) error {
	last := m.First + m.Count - 1
	gStart := c12.StartCodes[m.First]
	gEnd := uint64(c12.StartCodes[last]) + uint64(c12.Lengths[last]) - 1
	sStart := c4.StartCodes[m.Segment]
	sEnd := c4.EndCodes[m.Segment]

	if gStart != uint32(sStart) || gEnd != uint64(sEnd) {
		return fmt.Errorf("%w: segment %d [%#x, %#x] covered by groups as [%#x, %#x]",
			errs.ErrInconsistentTables, m.Segment, sStart, sEnd, gStart, gEnd)
	}

	rangeOffset := c4.IDRangeOffsets[m.Segment]
	if m.Count == 1 && rangeOffset != 0 {
		return fmt.Errorf("%w: segment %d maps one group but has idRangeOffset %d",
			errs.ErrInconsistentTables, m.Segment, rangeOffset)
	}
	if m.Count > 1 && (rangeOffset == 0 || c4.IDDeltas[m.Segment] != 0) {
		return fmt.Errorf("%w: segment %d maps %d groups but has idRangeOffset %d, idDelta %d",
			errs.ErrInconsistentTables, m.Segment, m.Count, rangeOffset, c4.IDDeltas[m.Segment])
	}

	return nil
}

// appendCMap4 writes type 4: the number of format 12 groups in each matched format 4 segment.
func appendCMap4(dst []byte, src Source, cfg Config) ([]byte, Result, error) {
	c12, err := src.CMapFormat12(cfg.CMap12.PlatformID, cfg.CMap12.EncodingID)
	if err != nil {
		return dst, Result{}, err
	}
	c4, err := src.CMapFormat4(cfg.CMap4.PlatformID, cfg.CMap4.EncodingID)
	if err != nil {
		return dst, Result{}, err
	}

	matches, err := MatchSegments(c4, c12)
	if err != nil {
		return dst, Result{}, err
	}

	h, err := section.NewGOSHeader(format.TypeCMap4, len(matches))
	if err != nil {
		return dst, Result{}, err
	}

	return appendFields(dst, h, len(matches), func(w *encoding.FieldWriter, i int) error {
		return w.Write(int64(matches[i].Count), type4CountWidth)
	})
}
