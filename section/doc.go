// Package section defines the binary headers of the GOS container format.
//
// # Container Structure
//
// A container holds one or more Group Of Segments (GOS) payloads in caller order:
//
//	┌──────────────────────────────────────────────┐
//	│ Count (1 byte): number of payloads           │
//	├──────────────────────────────────────────────┤
//	│ Payload 1                                    │
//	│  - GOS header                                │
//	│  - primary bit stream (byte aligned)         │
//	│  - secondary escape stream (byte aligned)    │
//	├──────────────────────────────────────────────┤
//	│ Payload 2 ...                                │
//	└──────────────────────────────────────────────┘
//
// # GOS Header Format
//
// cmap based types (2, 3, 4, 5), 3 bytes:
//
//	Bytes | Field      | Type   | Description
//	------|------------|--------|---------------------------
//	0     | Type       | uint8  | GOS type id
//	1-2   | EntryCount | uint16 | number of encoded entries
//
// CFF charset types (6, 7), 7 bytes:
//
//	Bytes | Field         | Type   | Description
//	------|---------------|--------|-----------------------------------------
//	0-3   | CharsetOffset | uint32 | absolute file offset of the charset table
//	4     | Type          | uint8  | GOS type id
//	5-6   | EntryCount    | uint16 | number of charset ranges
//
// All multi-byte fields are big-endian.
package section
