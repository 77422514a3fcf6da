package pngme

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"strings"
	"unicode/utf8"
)

const (
	lengthSize = 4
	typeSize   = 4
	crcSize    = 4

	// chunkOverhead is the encoded size of a chunk with an empty payload.
	chunkOverhead = lengthSize + typeSize + crcSize
)

// Chunk is a single length-prefixed, typed, checksummed record of a PNG file.
// A Chunk is immutable; build a new one to change its type or payload.
type Chunk struct {
	chunkType ChunkType
	data      []byte
	crc       uint32
}

// NewChunk builds a chunk and computes its CRC over the type bytes and data.
// The data slice is copied.
func NewChunk(chunkType ChunkType, data []byte) *Chunk {
	d := append([]byte(nil), data...)
	return &Chunk{
		chunkType: chunkType,
		data:      d,
		crc:       checksum(chunkType, d),
	}
}

func checksum(chunkType ChunkType, data []byte) uint32 {
	typ := chunkType.Bytes()
	crc := crc32.NewIEEE()
	crc.Write(typ[:])
	crc.Write(data)
	return crc.Sum32()
}

// Length returns the payload length in bytes.
func (c *Chunk) Length() uint32 {
	return uint32(len(c.data))
}

// CRC returns the CRC-32 of the type bytes and payload.
func (c *Chunk) CRC() uint32 {
	return c.crc
}

// Type returns the chunk type.
func (c *Chunk) Type() ChunkType {
	return c.chunkType
}

// Data returns the raw payload. Callers must not modify it.
func (c *Chunk) Data() []byte {
	return c.data
}

// DataAsString returns the payload as text.
func (c *Chunk) DataAsString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", ErrInvalidUTF8.WithDetail("chunkType", c.chunkType.String())
	}
	return string(c.data), nil
}

// EncodedLen returns the number of bytes Bytes will produce.
func (c *Chunk) EncodedLen() int {
	return chunkOverhead + len(c.data)
}

// Bytes encodes the chunk as length, type, data and crc.
func (c *Chunk) Bytes() []byte {
	buf := make([]byte, 0, c.EncodedLen())
	buf = binary.BigEndian.AppendUint32(buf, c.Length())
	typ := c.chunkType.Bytes()
	buf = append(buf, typ[:]...)
	buf = append(buf, c.data...)
	buf = binary.BigEndian.AppendUint32(buf, c.crc)
	return buf
}

// DecodeChunk decodes the chunk at the start of b. Bytes after the chunk are
// ignored; use EncodedLen on the result to advance past it.
func DecodeChunk(b []byte) (*Chunk, error) {
	if len(b) < lengthSize {
		return nil, NewTruncatedInputError("length", lengthSize, int64(len(b)))
	}
	length := binary.BigEndian.Uint32(b)
	rest := b[lengthSize:]

	if len(rest) < typeSize {
		return nil, NewTruncatedInputError("type", typeSize, int64(len(rest)))
	}
	var typ [4]byte
	copy(typ[:], rest)
	rest = rest[typeSize:]

	chunkType, err := ParseChunkType(typ)
	if err != nil {
		return nil, err
	}

	if uint64(len(rest)) < uint64(length) {
		return nil, NewTruncatedInputError("data", int64(length), int64(len(rest)))
	}
	data := rest[:length]
	rest = rest[length:]

	if len(rest) < crcSize {
		return nil, NewTruncatedInputError("crc", crcSize, int64(len(rest)))
	}
	stored := binary.BigEndian.Uint32(rest)

	chunk := NewChunk(chunkType, data)
	if chunk.crc != stored {
		return nil, NewCrcMismatchError(chunkType.String(), stored, chunk.crc)
	}
	return chunk, nil
}

func (c *Chunk) String() string {
	var sb strings.Builder
	sb.WriteString("Chunk {\n")
	fmt.Fprintf(&sb, "  Length: %d\n", c.Length())
	fmt.Fprintf(&sb, "  Type: %s\n", c.chunkType)
	fmt.Fprintf(&sb, "  Data: %d bytes\n", len(c.data))
	fmt.Fprintf(&sb, "  Crc: %d\n", c.crc)
	sb.WriteString("}\n")
	return sb.String()
}
