package forum

import (
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters, fixed for hash stability across restarts.
const (
	hashTime    = 1
	hashMemory  = 64 * 1024
	hashThreads = 4
	hashKeyLen  = 32
)

// Hasher derives password hashes with a single configuration-supplied salt
// shared by all users. Reusing one static salt is weaker than per-user
// random salts; the trade-off is recorded in DESIGN.md. Hashes are
// deterministic per salt, which is what Verify relies on.
type Hasher struct {
	salt []byte
}

// NewHasher creates a Hasher with the given salt. The salt must not be
// empty; config enforces that before the process starts serving.
func NewHasher(salt string) *Hasher {
	return &Hasher{salt: []byte(salt)}
}

// Hash returns the one-way hash of plaintext.
func (h *Hasher) Hash(plaintext string) string {
	key := argon2.IDKey([]byte(plaintext), h.salt, hashTime, hashMemory, hashThreads, hashKeyLen)
	return base64.RawStdEncoding.EncodeToString(key)
}

// Verify reports whether plaintext hashes to hash, in constant time.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return subtle.ConstantTimeCompare([]byte(h.Hash(plaintext)), []byte(hash)) == 1
}
