package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

var ErrInvalidSignatureEncoding = errors.New("signature is not valid base64")

// SigningKeys holds the process-wide Ed25519 key pair used to sign session
// identifiers. The pair is generated once at startup and injected into
// every component that needs it; the private key is never logged or
// persisted.
type SigningKeys struct {
	private ed25519.PrivateKey
	public  ed25519.PublicKey
}

// NewSigningKeys generates a fresh key pair from the OS random source.
func NewSigningKeys() (*SigningKeys, error) {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate signing keys: %w", err)
	}
	return &SigningKeys{private: private, public: public}, nil
}

// NewSigningKeysFromSeed builds a deterministic key pair. Tests only.
func NewSigningKeysFromSeed(seed []byte) (*SigningKeys, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	private := ed25519.NewKeyFromSeed(seed)
	return &SigningKeys{
		private: private,
		public:  private.Public().(ed25519.PublicKey),
	}, nil
}

func (k *SigningKeys) Sign(message []byte) []byte {
	return ed25519.Sign(k.private, message)
}

func (k *SigningKeys) Public() ed25519.PublicKey {
	return k.public
}

func EncodeSignature(signature []byte) string {
	return base64.StdEncoding.EncodeToString(signature)
}

func DecodeSignature(encoded string) ([]byte, error) {
	signature, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignatureEncoding, err)
	}
	return signature, nil
}

// VerifySignature reports whether signature was produced by the private
// counterpart of public over exactly message.
func VerifySignature(public ed25519.PublicKey, message, signature []byte) bool {
	if len(public) != ed25519.PublicKeySize || len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(public, message, signature)
}
