package driver

import (
	"crypto/sha256"

	"crest/internal/source"
)

// Digest is a SHA-256 cache key.
type Digest [32]byte

// cacheKey: H(schema || content). File.Hash считается по уже нормализованному
// тексту, так что none/nfc для одного файла дают разные ключи.
func cacheKey(file *source.File) Digest {
	h := sha256.New()
	_, _ = h.Write([]byte{byte(diskCacheSchemaVersion >> 8), byte(diskCacheSchemaVersion)})
	_, _ = h.Write(file.Hash[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
