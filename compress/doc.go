// Package compress provides the general-purpose codecs used to size GOS
// payloads after compression.
//
// GOS payloads are already bit-packed, so a second compression stage mostly
// pays off on the raw type 5 payload and on whole containers. The measure
// package runs every payload through the codecs below to show which layout
// stays smallest once a transport compression is applied:
//
//   - None: No compression
//   - Zstd: Best ratio (klauspost/compress, or valyala/gozstd with the gozstd build tag)
//   - S2: Fast with a good ratio
//   - LZ4: Fast block compression
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Codecs are looked up by format.CompressionType:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	compressed, err := codec.Compress(container)
//
// # Thread Safety
//
// All codec implementations are stateless values backed by pooled encoders and
// can be shared across goroutines.
package compress
