package pngme

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// CompressMessage deflates a message into a zlib stream, the same framing
// PNG uses for zTXt and IDAT payloads.
func CompressMessage(msg []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, NewCompressionError("deflate", err)
	}
	if _, err := zw.Write(msg); err != nil {
		_ = zw.Close()
		return nil, NewCompressionError("deflate", err)
	}
	if err := zw.Close(); err != nil {
		return nil, NewCompressionError("deflate", err)
	}
	return buf.Bytes(), nil
}

// DecompressMessage inflates a payload written by CompressMessage.
func DecompressMessage(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, NewCompressionError("inflate", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, NewCompressionError("inflate", err)
	}
	return out, nil
}
