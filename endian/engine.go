// Package endian provides the byte order engine used to serialize GOS headers
// and raw payload fields.
//
// GOS payloads are always big-endian, matching the SFNT tables they are derived
// from. The engine is an interface so that the encoder code paths stay
// independent from a concrete byte order:
//
//	engine := endian.GetBigEndianEngine()
//	buf = engine.AppendUint16(buf, entryCount)
//
// # Thread Safety
//
// The returned EndianEngine instances are immutable and safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.BigEndian satisfies it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian engine, the byte order of every GOS field.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
