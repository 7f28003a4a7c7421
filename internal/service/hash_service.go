package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id cost settings for operator password storage. Stored hashes
// carry their own parameters, so these only govern new hashes.
const (
	argonPasses  = 1
	argonMemory  = 64 * 1024 // KiB
	argonLanes   = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// Argon2HashService implements ports.HashService using Argon2id.
type Argon2HashService struct{}

func NewArgon2HashService() *Argon2HashService {
	return &Argon2HashService{}
}

// Hash derives an Argon2id hash with a fresh random salt, encoded as
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>.
func (s *Argon2HashService) Hash(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argonPasses, argonMemory, argonLanes, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory, argonPasses, argonLanes,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Verify re-derives the hash under the stored parameters and compares in
// constant time.
func (s *Argon2HashService) Verify(password string, encodedHash string) (bool, error) {
	stored, err := parseArgonHash(encodedHash)
	if err != nil {
		return false, err
	}

	key := argon2.IDKey([]byte(password), stored.salt,
		stored.passes, stored.memory, stored.lanes, uint32(len(stored.key)))

	return subtle.ConstantTimeCompare(stored.key, key) == 1, nil
}

type argonHash struct {
	salt   []byte
	key    []byte
	memory uint32
	passes uint32
	lanes  uint8
}

func parseArgonHash(encoded string) (argonHash, error) {
	var h argonHash

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return h, fmt.Errorf("invalid hash format: expected 6 parts, got %d", len(parts))
	}
	if parts[1] != "argon2id" {
		return h, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return h, fmt.Errorf("parsing version: %w", err)
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &h.memory, &h.passes, &h.lanes); err != nil {
		return h, fmt.Errorf("parsing params: %w", err)
	}

	var err error
	if h.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return h, fmt.Errorf("decoding salt: %w", err)
	}
	if h.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return h, fmt.Errorf("decoding hash: %w", err)
	}

	return h, nil
}
