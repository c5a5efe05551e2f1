// Package cmapgos compacts the character-to-glyph mapping tables of a font into
// Group Of Segments (GOS) payloads.
//
// A GOS container is a one-byte payload count followed by the payloads in the
// order they were requested:
//
//	+-------+-----------+-----------+-----+
//	| count | payload 1 | payload 2 | ... |
//	| 1B    |           |           |     |
//	+-------+-----------+-----------+-----+
//
// Each payload re-encodes one table with its own field widths; see package gos
// for the layouts of the six type ids.
//
// # Basic Usage
//
//	font, _ := sfnt.Parse(fontData)
//	compacter, _ := cmapgos.NewCompacter(font)
//
//	// charset (6 or 7, whichever the font uses) followed by the type 4 cmap
//	data, err := compacter.GenerateGOSTypes([]format.GOSType{format.TypeCharset2, format.TypeCMap4})
//
// Compact does both steps for a font file:
//
//	data, err := cmapgos.Compact(fontData, []format.GOSType{format.TypeCMap12Raw})
//
// # Package Structure
//
//   - encoding: delta transform, NoN and AOE number encodings, bit streams
//   - section: GOS header layout
//   - gos: the payload generators
//   - sfnt: the font source
//   - measure: payload size reports
package cmapgos

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/cmapgos/errs"
	"github.com/arloliu/cmapgos/format"
	"github.com/arloliu/cmapgos/gos"
	"github.com/arloliu/cmapgos/internal/options"
	"github.com/arloliu/cmapgos/internal/pool"
	"github.com/arloliu/cmapgos/section"
	"github.com/arloliu/cmapgos/sfnt"
)

// Compacter generates GOS payloads and containers from a font.
//
// A Compacter keeps no state between calls and is safe for concurrent use when
// its Source is.
type Compacter struct {
	src    gos.Source
	cfg    gos.Config
	logger logrus.FieldLogger
}

// NewCompacter creates a Compacter reading from src.
//
// By default the format 12 cmap is read from the (3, 10) subtable, the format 4
// cmap from (3, 1), and nothing is logged.
func NewCompacter(src gos.Source, opts ...Option) (*Compacter, error) {
	if src == nil {
		return nil, fmt.Errorf("cmapgos: nil source")
	}

	c := &Compacter{
		src:    src,
		cfg:    gos.DefaultConfig(),
		logger: discardLogger(),
	}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// Compact parses fontData and returns the container holding the requested types.
func Compact(fontData []byte, types []format.GOSType, opts ...Option) ([]byte, error) {
	font, err := sfnt.Parse(fontData)
	if err != nil {
		return nil, err
	}

	c, err := NewCompacter(font, opts...)
	if err != nil {
		return nil, err
	}

	return c.GenerateGOSTypes(types)
}

// GenerateGOSType returns the payload of a single type, without container prefix.
func (c *Compacter) GenerateGOSType(t format.GOSType) ([]byte, error) {
	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	if err := c.appendPayload(buf, t); err != nil {
		return nil, err
	}

	return slices.Clone(buf.Bytes()), nil
}

// GenerateGOSTypes returns a container with one payload per requested type.
//
// Types are encoded in the given order; duplicates are encoded again. Every
// payload is built in a scratch buffer and only appended once it is complete.
// If any type fails the whole call fails and no bytes are returned.
//
// Returns:
//   - []byte: count byte followed by the payloads; {0x00} for an empty list
//   - error: ErrTooManyTypes for more than 255 types, ErrUnknownGOSType or the
//     generator's error otherwise
func (c *Compacter) GenerateGOSTypes(types []format.GOSType) ([]byte, error) {
	if len(types) > section.MaxPayloadCount {
		return nil, fmt.Errorf("%w: %d (max=%d)", errs.ErrTooManyTypes, len(types), section.MaxPayloadCount)
	}

	container := pool.GetContainerBuffer()
	defer pool.PutContainerBuffer(container)
	payload := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(payload)

	container.MustWriteByte(byte(len(types)))
	for i, t := range types {
		payload.Reset()
		if err := c.appendPayload(payload, t); err != nil {
			return nil, fmt.Errorf("payload %d: %w", i, err)
		}
		container.MustWrite(payload.Bytes())
	}

	c.logger.WithFields(logrus.Fields{
		"payloads": len(types),
		"bytes":    container.Len(),
	}).Debug("built GOS container")

	return slices.Clone(container.Bytes()), nil
}

func (c *Compacter) appendPayload(buf *pool.ByteBuffer, t format.GOSType) error {
	out, res, err := gos.Append(buf.B, c.src, t, c.cfg)
	if err != nil {
		c.logger.WithError(err).WithField("gos_type", int(t)).Debug("GOS payload failed")
		return err
	}
	buf.B = out

	c.logger.WithFields(logrus.Fields{
		"gos_type": int(res.Type),
		"entries":  res.Entries,
		"escapes":  res.Escapes,
		"bytes":    res.Size,
	}).Debug("generated GOS payload")

	return nil
}
