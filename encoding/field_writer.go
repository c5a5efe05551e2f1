package encoding

import "fmt"

// FieldWriter encodes AOE fields into a primary bit stream and routes escaped
// values, NoN-encoded, into a secondary stream in encounter order.
//
// The encoded result is the byte-aligned primary stream immediately followed by
// the byte-aligned secondary stream.
type FieldWriter struct {
	primary   *BitStream
	secondary *BitStream
	fields    int
	escapes   int
}

// NewFieldWriter creates a FieldWriter with two empty streams.
// Call Finish to release the pooled buffers.
func NewFieldWriter() *FieldWriter {
	return &FieldWriter{
		primary:   NewBitStream(),
		secondary: NewBitStream(),
	}
}

// Write encodes value as a width-bit AOE field.
//
// Returns an error if width is invalid or an escaped value overflows NoN.
func (w *FieldWriter) Write(value int64, width int) error {
	field, err := AOE(value, width)
	if err != nil {
		return err
	}

	w.fields++
	if err := w.primary.WriteBitsValue(field.Bits); err != nil {
		return err
	}
	if !field.Escaped {
		return nil
	}

	non, err := NoN(field.Value)
	if err != nil {
		return fmt.Errorf("field %d: %w", w.fields-1, err)
	}
	w.escapes++

	return w.secondary.WriteBitsValue(non)
}

// Escapes returns the number of fields routed to the secondary stream.
func (w *FieldWriter) Escapes() int {
	return w.escapes
}

// Primary returns the byte-aligned primary stream.
func (w *FieldWriter) Primary() []byte {
	return w.primary.Bytes()
}

// Secondary returns the byte-aligned secondary stream.
func (w *FieldWriter) Secondary() []byte {
	return w.secondary.Bytes()
}

// AppendTo appends the aligned primary stream followed by the aligned secondary stream to dst.
func (w *FieldWriter) AppendTo(dst []byte) []byte {
	dst = append(dst, w.Primary()...)
	return append(dst, w.Secondary()...)
}

// Finish releases both streams.
func (w *FieldWriter) Finish() {
	w.primary.Finish()
	w.secondary.Finish()
}
