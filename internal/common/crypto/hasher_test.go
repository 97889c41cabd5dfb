package crypto

import (
	"errors"
	"strings"
	"testing"
)

func TestArgon2idHasher_HashAndVerify(t *testing.T) {
	hasher := NewArgon2idHasher()

	encoded, err := hasher.Hash("correct-horse")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Errorf("expected PHC encoding, got %q", encoded)
	}

	if strings.Contains(encoded, "correct-horse") {
		t.Error("encoded hash must not contain the plaintext")
	}

	parsed, err := hasher.Deserialize(encoded)
	if err != nil {
		t.Fatalf("expected deserialize to succeed, got %v", err)
	}

	if err := hasher.Verify("correct-horse", parsed); err != nil {
		t.Errorf("expected verify to succeed, got %v", err)
	}
}

func TestArgon2idHasher_VerifyWrongPassword(t *testing.T) {
	hasher := NewArgon2idHasher()

	encoded, err := hasher.Hash("correct-horse")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	parsed, err := hasher.Deserialize(encoded)
	if err != nil {
		t.Fatalf("expected deserialize to succeed, got %v", err)
	}

	if err := hasher.Verify("wrong-horse", parsed); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestArgon2idHasher_FreshSaltPerCall(t *testing.T) {
	hasher := NewArgon2idHasher()

	first, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	second, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if first == second {
		t.Error("expected distinct encodings for the same password")
	}
}

func TestArgon2idHasher_DeserializeCorrupt(t *testing.T) {
	hasher := NewArgon2idHasher()

	cases := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"not a hash", "plaintext"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"missing segments", "$argon2id$v=19$m=65536,t=1,p=4"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
		{"bad hash encoding", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!"},
		{"threads overflow", "$argon2id$v=19$m=65536,t=1,p=300$c2FsdA$aGFzaA"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := hasher.Deserialize(tc.encoded); !errors.Is(err, ErrCorruptHash) {
				t.Errorf("expected ErrCorruptHash, got %v", err)
			}
		})
	}
}

func TestArgon2idHasher_PasswordTooLong(t *testing.T) {
	hasher := NewArgon2idHasher()

	if _, err := hasher.Hash(strings.Repeat("a", 513)); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("expected ErrPasswordTooLong, got %v", err)
	}
}
