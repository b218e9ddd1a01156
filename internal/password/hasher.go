// Package password provides one-way password hashing and verification.
//
// Hashing uses argon2id with a fresh random salt per call. The encoded
// output embeds the algorithm, cost parameters, salt and digest so
// verification is self-describing:
//
//	$argon2id$v=19$m=MEMORY,t=TIME,p=THREADS$SALT$DIGEST
//
// Verification is constant-time over the digest and fails closed: any
// malformed encoded hash verifies as false rather than raising an error.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// MaxPasswordLength bounds plaintext input so hashing cost stays bounded.
const MaxPasswordLength = 256

// ErrEmptyPassword is returned when Hash is called with an empty password.
var ErrEmptyPassword = errors.New("password: empty password")

// ErrPasswordTooLong is returned when the plaintext exceeds MaxPasswordLength bytes.
var ErrPasswordTooLong = fmt.Errorf("password: maximum length is %d bytes", MaxPasswordLength)

// Hasher hashes and verifies passwords using argon2id.
type Hasher struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
	saltLen int
}

// Option configures the hasher.
type Option func(*Hasher)

// WithTime sets the number of iterations (default: 1).
func WithTime(t uint32) Option {
	return func(h *Hasher) {
		if t > 0 {
			h.time = t
		}
	}
}

// WithMemory sets the memory usage in KiB (default: 64*1024 = 64MB).
func WithMemory(m uint32) Option {
	return func(h *Hasher) {
		if m > 0 {
			h.memory = m
		}
	}
}

// WithThreads sets the parallelism (default: 4).
func WithThreads(t uint8) Option {
	return func(h *Hasher) {
		if t > 0 {
			h.threads = t
		}
	}
}

// NewHasher creates an argon2id-based password hasher.
// Defaults follow OWASP recommendations: time=1, memory=64MB, threads=4.
func NewHasher(opts ...Option) *Hasher {
	h := &Hasher{
		time:    1,
		memory:  64 * 1024,
		threads: 4,
		keyLen:  32,
		saltLen: 16,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash returns the encoded argon2id hash of the password. Each call uses a
// fresh random salt, so hashing the same password twice yields different
// encoded strings that both verify.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > MaxPasswordLength {
		return "", ErrPasswordTooLong
	}

	salt, err := generateRandomBytes(h.saltLen)
	if err != nil {
		return "", fmt.Errorf("password: generate salt: %w", err)
	}

	digest := argon2.IDKey([]byte(password), salt, h.time, h.memory, h.threads, h.keyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memory, h.time, h.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)
	return encoded, nil
}

// Verify reports whether the password matches the encoded hash. It
// re-derives the digest with the parameters and salt embedded in the hash
// and compares in constant time. Malformed hashes verify as false.
func (h *Hasher) Verify(password, encodedHash string) bool {
	params, salt, expected, err := decodeHash(encodedHash)
	if err != nil {
		return false
	}

	digest := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, uint32(len(expected)))

	return subtle.ConstantTimeCompare(digest, expected) == 1
}

type hashParams struct {
	memory  uint32
	time    uint32
	threads uint8
}

// decodeHash splits an encoded hash into its parameters, salt and digest.
func decodeHash(encodedHash string) (hashParams, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return hashParams{}, nil, nil, errors.New("password: invalid argon2id hash format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return hashParams{}, nil, nil, errors.New("password: unsupported argon2 version")
	}

	var p hashParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return hashParams{}, nil, nil, fmt.Errorf("password: parse params: %w", err)
	}
	if p.memory == 0 || p.time == 0 || p.threads == 0 {
		return hashParams{}, nil, nil, errors.New("password: zero cost parameter")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return hashParams{}, nil, nil, fmt.Errorf("password: decode salt: %w", err)
	}

	digest, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(digest) == 0 {
		return hashParams{}, nil, nil, errors.New("password: decode digest")
	}

	return p, salt, digest, nil
}

// generateRandomBytes returns cryptographically secure random bytes.
func generateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}
