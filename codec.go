package densemap

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/minio/blake2b-simd"
)

var defaultMarshal = json.Marshal

func appendLength(buf []byte, n int) []byte {
	var tmpbuf [binary.MaxVarintLen64]byte
	len := binary.PutUvarint(tmpbuf[:], uint64(n))
	return append(buf, tmpbuf[:len]...)
}

func appendMarshaled(buf []byte, i interface{}, marshal func(interface{}) ([]byte, error)) ([]byte, error) {
	body, err := marshal(i)
	if err != nil {
		return nil, err
	}
	buf = appendLength(buf, len(body))
	return append(buf, body...), nil
}

// encode lays out the entry count followed by each key and value as a
// length-prefixed marshaled body, in map order.
func (m *Map[K, V]) encode(marshal func(interface{}) ([]byte, error)) ([]byte, error) {
	buf := appendLength(nil, len(m.entries))
	var err error
	for i, e := range m.entries {
		buf, err = appendMarshaled(buf, e.Key, marshal)
		if err != nil {
			return nil, fmt.Errorf("marshal key %d: %w", i, err)
		}
		buf, err = appendMarshaled(buf, e.Value, marshal)
		if err != nil {
			return nil, fmt.Errorf("marshal value %d: %w", i, err)
		}
	}
	return buf, nil
}

// Digest returns a BLAKE2b-256 content hash of the map, encoded with
// base64.RawURLEncoding. Keys and values are serialized with marshal, or
// encoding/json if marshal is nil. Maps holding equal entries in the same
// order have equal digests.
func (m *Map[K, V]) Digest(marshal func(interface{}) ([]byte, error)) (string, error) {
	if marshal == nil {
		marshal = defaultMarshal
	}
	encoded, err := m.encode(marshal)
	if err != nil {
		return "", err
	}
	return ContentHash(encoded), nil
}

// ContentHash names content by its BLAKE2b-256 hash.
func ContentHash(b []byte) string {
	hashBytes := blake2b.Sum256(b)
	return base64.RawURLEncoding.EncodeToString(hashBytes[:])
}
