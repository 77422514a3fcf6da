package pngme

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/flaneur2020/pngme/pngme/logger"
	"github.com/opencontainers/go-digest"
)

// Signature is the fixed 8-byte header of every PNG file.
var Signature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Png is an ordered sequence of chunks following the PNG signature.
// It is not safe for concurrent mutation.
type Png struct {
	chunks []*Chunk
}

// NewPng builds a container from chunks in file order.
func NewPng(chunks ...*Chunk) *Png {
	return &Png{chunks: append([]*Chunk(nil), chunks...)}
}

// DecodePng decodes a complete PNG file held in memory. Any chunk failure
// fails the whole decode.
func DecodePng(b []byte) (*Png, error) {
	if len(b) < len(Signature) || !bytes.Equal(b[:len(Signature)], Signature[:]) {
		n := len(b)
		if n > len(Signature) {
			n = len(Signature)
		}
		return nil, ErrInvalidSignature.WithDetail("header", fmt.Sprintf("% x", b[:n]))
	}

	p := &Png{}
	offset := len(Signature)
	for offset < len(b) {
		chunk, err := DecodeChunk(b[offset:])
		if err != nil {
			return nil, fmt.Errorf("failed to decode chunk %d at offset %d: %w", len(p.chunks), offset, err)
		}
		logger.Debug("decoded chunk %s at offset %d (%d bytes)", chunk.Type(), offset, chunk.Length())
		p.chunks = append(p.chunks, chunk)
		offset += chunk.EncodedLen()
	}
	return p, nil
}

// ReadPng reads r to EOF and decodes the result.
func ReadPng(r io.Reader) (*Png, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read png: %w", err)
	}
	return DecodePng(b)
}

// Chunks returns the chunks in file order. The slice must not be modified.
func (p *Png) Chunks() []*Chunk {
	return p.chunks
}

// AppendChunk adds a chunk at the end. Duplicate types are allowed.
func (p *Png) AppendChunk(chunk *Chunk) {
	p.chunks = append(p.chunks, chunk)
}

// RemoveChunk removes the first chunk whose type is chunkType.
func (p *Png) RemoveChunk(chunkType string) error {
	idx := p.indexOf(chunkType)
	if idx < 0 {
		return NewChunkNotFoundError(chunkType)
	}
	p.chunks = append(p.chunks[:idx:idx], p.chunks[idx+1:]...)
	return nil
}

// ChunkByType returns the first chunk whose type is chunkType, or nil.
func (p *Png) ChunkByType(chunkType string) *Chunk {
	idx := p.indexOf(chunkType)
	if idx < 0 {
		return nil
	}
	return p.chunks[idx]
}

func (p *Png) indexOf(chunkType string) int {
	for i, c := range p.chunks {
		if c.Type().String() == chunkType {
			return i
		}
	}
	return -1
}

// Bytes encodes the signature followed by every chunk.
func (p *Png) Bytes() []byte {
	size := len(Signature)
	for _, c := range p.chunks {
		size += c.EncodedLen()
	}
	buf := make([]byte, 0, size)
	buf = append(buf, Signature[:]...)
	for _, c := range p.chunks {
		buf = append(buf, c.Bytes()...)
	}
	return buf
}

// Digest returns the sha256 digest of the encoded file.
func (p *Png) Digest() digest.Digest {
	return digest.FromBytes(p.Bytes())
}

func (p *Png) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Signature: % X\n", Signature[:])
	for _, c := range p.chunks {
		sb.WriteString(c.String())
	}
	return sb.String()
}
