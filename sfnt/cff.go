package sfnt

import (
	"fmt"

	"github.com/tdewolff/parse/v2"

	"github.com/arloliu/cmapgos/errs"
)

const (
	cffOpCharset   = 15
	cffOpEscape    = 12
	cffMaxOperands = 48
)

// CFFCharset locates the charset of the first font of a CFF table.
type CFFCharset struct {
	// TableOffset is the absolute file offset of the CFF table.
	TableOffset uint32
	// CharsetOffset is the charset operand of the Top DICT, relative to the CFF table.
	// Values 0, 1 and 2 denote the predefined ISOAdobe, Expert and ExpertSubset charsets.
	CharsetOffset uint32
	// FontCount is the number of fonts in the Name INDEX.
	FontCount int
}

// AbsoluteOffset returns the file offset of the charset data.
func (c CFFCharset) AbsoluteOffset() uint32 {
	return c.TableOffset + c.CharsetOffset
}

// IsPredefined reports whether the charset refers to one of the predefined charsets.
func (c CFFCharset) IsPredefined() bool {
	return c.CharsetOffset <= 2
}

// CFFCharset reads the CFF header, the Name INDEX and the first Top DICT to
// locate the charset.
//
// Returns:
//   - CFFCharset: the charset location; CharsetOffset is 0 when the Top DICT omits it
//   - error: ErrMissingTable if the font has no CFF table, ErrInvalidFontData if it is malformed
func (f *Font) CFFCharset() (CFFCharset, error) {
	b, offset, err := f.Table("CFF ")
	if err != nil {
		return CFFCharset{}, err
	}
	if len(b) < 4 {
		return CFFCharset{}, fmt.Errorf("%w: CFF header truncated", errs.ErrInvalidFontData)
	}

	r := parse.NewBinaryReader(b)
	major := r.ReadUint8()
	_ = r.ReadUint8() // minor
	hdrSize := r.ReadUint8()
	if major != 1 || hdrSize < 4 || int(hdrSize) > len(b) {
		return CFFCharset{}, fmt.Errorf("%w: CFF version %d, header size %d", errs.ErrInvalidFontData, major, hdrSize)
	}
	r.Seek(uint32(hdrSize))

	names, err := readCFFIndex(r)
	if err != nil {
		return CFFCharset{}, fmt.Errorf("%w: CFF Name INDEX: %w", errs.ErrInvalidFontData, err)
	}
	if len(names) == 0 {
		return CFFCharset{}, fmt.Errorf("%w: CFF Name INDEX is empty", errs.ErrInvalidFontData)
	}

	dicts, err := readCFFIndex(r)
	if err != nil {
		return CFFCharset{}, fmt.Errorf("%w: CFF Top DICT INDEX: %w", errs.ErrInvalidFontData, err)
	}
	if len(dicts) != len(names) {
		return CFFCharset{}, fmt.Errorf("%w: CFF Top DICT INDEX has %d entries for %d fonts",
			errs.ErrInvalidFontData, len(dicts), len(names))
	}

	charset, err := cffDictInt(dicts[0], cffOpCharset)
	if err != nil {
		return CFFCharset{}, fmt.Errorf("%w: CFF Top DICT: %w", errs.ErrInvalidFontData, err)
	}
	if charset < 0 || int64(charset) >= int64(len(b)) {
		return CFFCharset{}, fmt.Errorf("%w: CFF charset offset %d out of range", errs.ErrInvalidFontData, charset)
	}

	return CFFCharset{
		TableOffset:   offset,
		CharsetOffset: uint32(charset),
		FontCount:     len(names),
	}, nil
}

// readCFFIndex reads a CFF INDEX and returns its objects.
func readCFFIndex(r *parse.BinaryReader) ([][]byte, error) {
	if r.Len() < 2 {
		return nil, fmt.Errorf("count truncated")
	}
	count := uint32(r.ReadUint16())
	if count == 0 {
		return nil, nil
	}

	offSize := uint32(r.ReadUint8())
	if offSize == 0 || offSize > 4 {
		return nil, fmt.Errorf("bad offSize %d", offSize)
	}
	if r.Len() < offSize*(count+1) {
		return nil, fmt.Errorf("offset array truncated")
	}

	offsets := make([]uint32, count+1)
	for i := range offsets {
		var v uint32
		for range offSize {
			v = v<<8 | uint32(r.ReadUint8())
		}
		if v == 0 || (i > 0 && v < offsets[i-1]+1) {
			return nil, fmt.Errorf("bad offset %d at %d", v, i)
		}
		offsets[i] = v - 1
	}
	if r.Len() < offsets[count] {
		return nil, fmt.Errorf("data truncated")
	}

	data := r.ReadBytes(offsets[count])
	objects := make([][]byte, count)
	for i := range count {
		objects[i] = data[offsets[i]:offsets[i+1]]
	}

	return objects, nil
}

// cffDictInt returns the last integer operand of op in a DICT, or 0 when op is absent.
func cffDictInt(dict []byte, op int) (int, error) {
	r := parse.NewBinaryReader(dict)
	operands := make([]int, 0, cffMaxOperands)
	for r.Len() > 0 {
		b0 := int(r.ReadUint8())
		switch {
		case b0 < 22:
			if b0 == cffOpEscape {
				if r.Len() == 0 {
					return 0, fmt.Errorf("truncated escape operator")
				}
				b0 = 256 + int(r.ReadUint8())
			}
			if b0 == op {
				if len(operands) == 0 {
					return 0, fmt.Errorf("operator %d without operand", op)
				}

				return operands[len(operands)-1], nil
			}
			operands = operands[:0]
		case b0 == 28:
			if r.Len() < 2 {
				return 0, fmt.Errorf("truncated operand")
			}
			operands = append(operands, int(int16(r.ReadUint16()))) //nolint:gosec // G115: shortint is two's complement
		case b0 == 29:
			if r.Len() < 4 {
				return 0, fmt.Errorf("truncated operand")
			}
			operands = append(operands, int(int32(r.ReadUint32()))) //nolint:gosec // G115: longint is two's complement
		case b0 == 30:
			if err := skipCFFReal(r); err != nil {
				return 0, err
			}
			// reals never locate data; keep the operand count right
			operands = append(operands, 0)
		case b0 >= 32 && b0 <= 246:
			operands = append(operands, b0-139)
		case b0 >= 247 && b0 <= 254:
			if r.Len() == 0 {
				return 0, fmt.Errorf("truncated operand")
			}
			b1 := int(r.ReadUint8())
			if b0 <= 250 {
				operands = append(operands, (b0-247)*256+b1+108)
			} else {
				operands = append(operands, -(b0-251)*256-b1-108)
			}
		default:
			return 0, fmt.Errorf("reserved DICT byte %d", b0)
		}

		if len(operands) > cffMaxOperands {
			return 0, fmt.Errorf("too many operands")
		}
	}

	return 0, nil
}

func skipCFFReal(r *parse.BinaryReader) error {
	for r.Len() > 0 {
		b := r.ReadUint8()
		if b>>4 == 0xF || b&0xF == 0xF {
			return nil
		}
	}

	return fmt.Errorf("unterminated real operand")
}
