package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const (
	AlgorithmPBKDF2 = "pbkdf2"
	AlgorithmBcrypt = "bcrypt"

	DefaultPBKDF2Iterations = 600000
	DefaultSaltLength       = 8

	pbkdf2Method = "pbkdf2:sha256"
	saltChars    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var errMalformedHash = errors.New("malformed password hash")

// HasherOptions configures how new passwords are hashed. Verification always
// accepts both formats regardless of Algorithm.
type HasherOptions struct {
	Algorithm  string
	Iterations int
	SaltLength int
	BcryptCost int
}

// PasswordHasher hashes passwords as "pbkdf2:sha256:<iterations>$<salt>$<hex>"
// (werkzeug's layout) or as bcrypt.
type PasswordHasher struct {
	opts  HasherOptions
	dummy string
}

func NewPasswordHasher(opts HasherOptions) (*PasswordHasher, error) {
	if opts.Algorithm == "" {
		opts.Algorithm = AlgorithmPBKDF2
	}
	if opts.Algorithm != AlgorithmPBKDF2 && opts.Algorithm != AlgorithmBcrypt {
		return nil, fmt.Errorf("unknown password hash algorithm %q", opts.Algorithm)
	}
	if opts.Iterations <= 0 {
		opts.Iterations = DefaultPBKDF2Iterations
	}
	if opts.SaltLength <= 0 {
		opts.SaltLength = DefaultSaltLength
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}

	h := &PasswordHasher{opts: opts}
	dummy, err := h.Hash("dummy-password-for-timing")
	if err != nil {
		return nil, err
	}
	h.dummy = dummy
	return h, nil
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	if h.opts.Algorithm == AlgorithmBcrypt {
		b, err := bcrypt.GenerateFromPassword([]byte(password), h.opts.BcryptCost)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	salt, err := genSalt(h.opts.SaltLength)
	if err != nil {
		return "", err
	}
	sum := pbkdf2.Key([]byte(password), []byte(salt), h.opts.Iterations, sha256.Size, sha256.New)
	return fmt.Sprintf("%s:%d$%s$%s", pbkdf2Method, h.opts.Iterations, salt, hex.EncodeToString(sum)), nil
}

// Verify reports whether password produced encoded. The empty password never matches.
func (h *PasswordHasher) Verify(encoded, password string) bool {
	if password == "" || encoded == "" {
		return false
	}
	if strings.HasPrefix(encoded, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
	}

	iterations, salt, want, err := parsePBKDF2(encoded)
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(password), []byte(salt), iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// Burn runs one verification against a throwaway hash so that a lookup miss
// costs as much as a wrong password.
func (h *PasswordHasher) Burn(password string) {
	_ = h.Verify(h.dummy, password+"x")
}

func parsePBKDF2(encoded string) (int, string, []byte, error) {
	parts := strings.SplitN(encoded, "$", 3)
	if len(parts) != 3 {
		return 0, "", nil, errMalformedHash
	}
	method, salt, digest := parts[0], parts[1], parts[2]

	params := strings.Split(method, ":")
	if len(params) != 3 || params[0]+":"+params[1] != pbkdf2Method {
		return 0, "", nil, errMalformedHash
	}
	iterations, err := strconv.Atoi(params[2])
	if err != nil || iterations <= 0 {
		return 0, "", nil, errMalformedHash
	}

	want, err := hex.DecodeString(digest)
	if err != nil || len(want) == 0 {
		return 0, "", nil, errMalformedHash
	}
	return iterations, salt, want, nil
}

func genSalt(n int) (string, error) {
	max := big.NewInt(int64(len(saltChars)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = saltChars[idx.Int64()]
	}
	return string(b), nil
}
