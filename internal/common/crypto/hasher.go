package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/chatter-app/chatter/backend/internal/common/constants"
)

const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2SaltLen = 16
	argon2KeyLen  = 32
)

var (
	ErrHashingFailed    = errors.New("password hashing failed")
	ErrPasswordTooLong  = errors.New("password exceeds maximum length")
	ErrCorruptHash      = errors.New("stored password hash is malformed")
	ErrPasswordMismatch = errors.New("password does not match")
)

// ParsedHash is a decoded argon2id record: the parameters and salt needed
// to recompute the hash, plus the expected output.
type ParsedHash struct {
	Version int
	Memory  uint32
	Time    uint32
	Threads uint8
	Salt    []byte
	Hash    []byte
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Deserialize(encoded string) (ParsedHash, error)
	Verify(password string, parsed ParsedHash) error
}

// Argon2idHasher implements PasswordHasher with argon2id and a fresh
// random salt per call, serialized in PHC string format.
type Argon2idHasher struct{}

func NewArgon2idHasher() *Argon2idHasher {
	return &Argon2idHasher{}
}

func (h *Argon2idHasher) Hash(password string) (string, error) {
	if len(password) > constants.PasswordMaxBytes {
		return "", ErrPasswordTooLong
	}

	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashingFailed, err)
	}

	hash := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Time,
		argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)

	return encoded, nil
}

func (h *Argon2idHasher) Deserialize(encoded string) (ParsedHash, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return ParsedHash{}, fmt.Errorf("%w: expected 6 segments, got %d", ErrCorruptHash, len(parts))
	}

	if parts[1] != "argon2id" {
		return ParsedHash{}, fmt.Errorf("%w: unsupported algorithm %q", ErrCorruptHash, parts[1])
	}

	var parsed ParsedHash
	if _, err := fmt.Sscanf(parts[2], "v=%d", &parsed.Version); err != nil {
		return ParsedHash{}, fmt.Errorf("%w: %v", ErrCorruptHash, err)
	}

	var threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &parsed.Memory, &parsed.Time, &threads); err != nil {
		return ParsedHash{}, fmt.Errorf("%w: %v", ErrCorruptHash, err)
	}
	if threads == 0 || threads > 255 {
		return ParsedHash{}, fmt.Errorf("%w: threads value %d out of range", ErrCorruptHash, threads)
	}
	parsed.Threads = uint8(threads)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return ParsedHash{}, fmt.Errorf("%w: %v", ErrCorruptHash, err)
	}
	parsed.Salt = salt

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return ParsedHash{}, fmt.Errorf("%w: %v", ErrCorruptHash, err)
	}
	if len(hash) == 0 || len(hash) > 1<<30 {
		return ParsedHash{}, fmt.Errorf("%w: invalid key length %d", ErrCorruptHash, len(hash))
	}
	parsed.Hash = hash

	return parsed, nil
}

// Verify recomputes the hash with the stored parameters and compares in
// constant time.
func (h *Argon2idHasher) Verify(password string, parsed ParsedHash) error {
	computed := argon2.IDKey(
		[]byte(password),
		parsed.Salt,
		parsed.Time,
		parsed.Memory,
		parsed.Threads,
		uint32(len(parsed.Hash)),
	)

	if subtle.ConstantTimeCompare(computed, parsed.Hash) != 1 {
		return ErrPasswordMismatch
	}

	return nil
}
