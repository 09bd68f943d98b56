// Package compress provides the codecs used for dataset column payloads.
//
// Uploaded datasets are kept in memory as little-endian float64 columns. A codec
// is applied to each encoded column so that large uploads stay cheap to hold:
//   - None: No compression (fastest, largest)
//   - Zstd: Best ratio, moderate speed (klauspost/compress/zstd)
//   - S2: Balanced compression and speed (klauspost/compress/s2)
//   - LZ4: Fast decompression, moderate compression (pierrec/lz4)
//
// # Usage
//
//	codec, err := compress.GetCodec(compress.TypeZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
//	...
//	payload, err = codec.Decompress(packed)
//
// # Ownership
//
// Every codec returns a newly allocated slice from Compress and Decompress, so the
// caller may reuse its input buffer immediately.
//
// # Thread Safety
//
// All built-in codecs are stateless values and safe for concurrent use. Zstd and
// LZ4 keep their heavy encoder state in sync.Pools.
package compress
