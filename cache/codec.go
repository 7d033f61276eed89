package cache

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/searchgo/docset"
	"github.com/hupe1980/searchgo/resource"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression defines the algorithm used for cache entry payloads.
type Compression uint8

const (
	// CompressionNone stores the serialized bitmap as-is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast, hot entries).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio).
	CompressionZSTD Compression = 2
)

// Codec turns a DocSet into a compact byte payload and back. The
// payload is the roaring serialization of the set's dense view, block
// compressed; decoding always yields a fresh BitDocSet, so cache hits
// never alias each other.
//
// The payload lives in memory only; this is not a storage format.
type Codec struct {
	compression Compression
	rc          *resource.Controller // throughput budget, may be nil
}

// NewCodec creates a codec. rc, if non-nil, rate-limits encode and
// decode throughput.
func NewCodec(compression Compression, rc *resource.Controller) *Codec {
	return &Codec{compression: compression, rc: rc}
}

// blockHeaderSize is [UncompressedSize uint32][CompressedSize uint32];
// CompressedSize 0 means the payload is stored uncompressed.
const blockHeaderSize = 8

// ZSTD encoder/decoder pools for efficiency.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Encode serializes and compresses ds.
func (c *Codec) Encode(ctx context.Context, ds docset.DocSet) ([]byte, error) {
	data, err := ds.Bits().ToBytes()
	if err != nil {
		return nil, err
	}

	if err := c.rc.AcquireCodec(ctx, len(data)); err != nil {
		return nil, err
	}

	var compressed []byte
	switch c.compression {
	case CompressionLZ4:
		compressed, err = compressLZ4(data)
	case CompressionZSTD:
		compressed = compressZSTD(data)
	case CompressionNone:
		// leave compressed nil, store raw
	default:
		return nil, errors.New("cache: unknown compression type")
	}
	if err != nil {
		return nil, err
	}

	// Store raw when compression does not pay for itself.
	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		result := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(result[0:], uint32(len(data))) //nolint:gosec
		binary.LittleEndian.PutUint32(result[4:], 0)
		copy(result[blockHeaderSize:], data)
		return result, nil
	}

	result := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))       //nolint:gosec
	binary.LittleEndian.PutUint32(result[4:], uint32(len(compressed))) //nolint:gosec
	copy(result[blockHeaderSize:], compressed)
	return result, nil
}

// Decode rebuilds a dense set from an encoded payload.
func (c *Codec) Decode(ctx context.Context, payload []byte) (*docset.BitDocSet, error) {
	if len(payload) < blockHeaderSize {
		return nil, errors.New("cache: payload too small for header")
	}

	uncompressedSize := binary.LittleEndian.Uint32(payload[0:])
	compressedSize := binary.LittleEndian.Uint32(payload[4:])
	body := payload[blockHeaderSize:]

	if err := c.rc.AcquireCodec(ctx, int(uncompressedSize)); err != nil {
		return nil, err
	}

	var data []byte
	if compressedSize == 0 {
		data = body
	} else {
		if int(compressedSize) != len(body) {
			return nil, errors.New("cache: truncated payload")
		}
		switch c.compression {
		case CompressionLZ4:
			data = make([]byte, uncompressedSize)
			n, err := lz4.UncompressBlock(body, data)
			if err != nil {
				return nil, err
			}
			data = data[:n]
		case CompressionZSTD:
			dec := getZstdDecoder()
			defer zstdDecoderPool.Put(dec)
			var err error
			data, err = dec.DecodeAll(body, make([]byte, 0, uncompressedSize))
			if err != nil {
				return nil, err
			}
		default:
			return nil, errors.New("cache: compressed payload with unknown compression type")
		}
	}

	bits := roaring.New()
	if _, err := bits.FromBuffer(data); err != nil {
		return nil, err
	}
	return docset.NewBitDocSet(bits), nil
}

func compressLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return compressed[:n], nil
}

func compressZSTD(data []byte) []byte {
	enc := getZstdEncoder()
	defer zstdEncoderPool.Put(enc)
	return enc.EncodeAll(data, nil)
}
