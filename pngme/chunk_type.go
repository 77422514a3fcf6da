package pngme

// ChunkType is the 4-byte tag that names a chunk. The ASCII case of each
// byte encodes one property bit.
type ChunkType struct {
	b [4]byte
}

// ParseChunkType validates raw type bytes. Every byte must be an ASCII letter.
func ParseChunkType(b [4]byte) (ChunkType, error) {
	for i, c := range b {
		if !isASCIILetter(c) {
			return ChunkType{}, NewInvalidChunkTypeError(b, i)
		}
	}
	return ChunkType{b: b}, nil
}

// ChunkTypeFromString parses a chunk type such as "tEXt".
func ChunkTypeFromString(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, NewInvalidLengthError(s)
	}
	var b [4]byte
	copy(b[:], s)
	return ParseChunkType(b)
}

// MustChunkType is like ChunkTypeFromString but panics on error.
// It is meant for package-level constants and tests.
func MustChunkType(s string) ChunkType {
	ct, err := ChunkTypeFromString(s)
	if err != nil {
		panic(err)
	}
	return ct
}

// Bytes returns the raw type bytes.
func (c ChunkType) Bytes() [4]byte {
	return c.b
}

// IsCritical reports whether decoders must understand the chunk (uppercase first byte).
func (c ChunkType) IsCritical() bool {
	return isUpper(c.b[0])
}

// IsPublic reports whether the type is registered publicly (uppercase second byte).
func (c ChunkType) IsPublic() bool {
	return isUpper(c.b[1])
}

// IsReservedBitValid reports whether the reserved third byte is uppercase.
func (c ChunkType) IsReservedBitValid() bool {
	return isUpper(c.b[2])
}

// IsSafeToCopy reports whether editors may copy the chunk without
// understanding it. Unlike the other properties this one is set by a
// lowercase byte.
func (c ChunkType) IsSafeToCopy() bool {
	return isLower(c.b[3])
}

// IsValid reports whether the type is fully conforming: letters only and the
// reserved bit uppercase.
func (c ChunkType) IsValid() bool {
	if !c.IsReservedBitValid() {
		return false
	}
	for _, b := range c.b {
		if !isASCIILetter(b) {
			return false
		}
	}
	return true
}

func (c ChunkType) String() string {
	return string(c.b[:])
}

func isUpper(b byte) bool {
	return 'A' <= b && b <= 'Z'
}

func isLower(b byte) bool {
	return 'a' <= b && b <= 'z'
}

func isASCIILetter(b byte) bool {
	return isUpper(b) || isLower(b)
}
