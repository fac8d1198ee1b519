package compression

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Shared codec state. Encoder and decoder are safe for concurrent use
// through EncodeAll/DecodeAll, so one of each serves the whole process.
var (
	zstdOnce    sync.Once
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
	zstdInitErr error
)

func initZstd() {
	zstdEncoder, zstdInitErr = zstd.NewWriter(nil)
	if zstdInitErr != nil {
		return
	}
	zstdDecoder, zstdInitErr = zstd.NewReader(nil)
}

type ZstdCompressor struct{}

func (z ZstdCompressor) Compress(data []byte) ([]byte, error) {
	zstdOnce.Do(initZstd)
	if zstdInitErr != nil {
		return nil, zstdInitErr
	}
	return zstdEncoder.EncodeAll(data, nil), nil
}

func (z ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	zstdOnce.Do(initZstd)
	if zstdInitErr != nil {
		return nil, zstdInitErr
	}
	return zstdDecoder.DecodeAll(data, nil)
}
