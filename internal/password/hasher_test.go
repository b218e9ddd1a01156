package password

import (
	"strings"
	"testing"
)

// Low-cost parameters keep the test suite fast; correctness does not
// depend on the cost settings.
func testHasher() *Hasher {
	return NewHasher(WithTime(1), WithMemory(8*1024), WithThreads(1))
}

func TestHash_RoundTrip(t *testing.T) {
	h := testHasher()

	encoded, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if encoded == "correct horse battery staple" {
		t.Fatal("encoded hash equals the plaintext")
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("unexpected hash format: %s", encoded)
	}
	if !h.Verify("correct horse battery staple", encoded) {
		t.Error("Verify() = false for the original password")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	h := testHasher()

	encoded, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if h.Verify("not-the-secret", encoded) {
		t.Error("Verify() = true for a different password")
	}
}

func TestHash_SaltRandomization(t *testing.T) {
	h := testHasher()

	first, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	second, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical; salt is not randomized")
	}
	if !h.Verify("secret", first) || !h.Verify("secret", second) {
		t.Error("both salted hashes should verify against the same password")
	}
}

func TestHash_EmptyPassword(t *testing.T) {
	h := testHasher()

	if _, err := h.Hash(""); err != ErrEmptyPassword {
		t.Fatalf("Hash(\"\") error = %v, want ErrEmptyPassword", err)
	}
}

func TestHash_TooLong(t *testing.T) {
	h := testHasher()

	long := strings.Repeat("a", MaxPasswordLength+1)
	if _, err := h.Hash(long); err != ErrPasswordTooLong {
		t.Fatalf("Hash(long) error = %v, want ErrPasswordTooLong", err)
	}

	// Exactly at the bound is accepted.
	if _, err := h.Hash(strings.Repeat("a", MaxPasswordLength)); err != nil {
		t.Fatalf("Hash(max-length) error: %v", err)
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	h := testHasher()

	malformed := []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=8192,t=1,p=1$onlyfourparts",
		"$bcrypt$v=19$m=8192,t=1,p=1$c2FsdA$ZGlnZXN0",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdA$ZGlnZXN0",
		"$argon2id$v=19$m=abc,t=1,p=1$c2FsdA$ZGlnZXN0",
		"$argon2id$v=19$m=0,t=0,p=0$c2FsdA$ZGlnZXN0",
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$ZGlnZXN0",
		"$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$!!!",
		"$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$",
	}
	for _, enc := range malformed {
		if h.Verify("secret", enc) {
			t.Errorf("Verify() = true for malformed hash %q", enc)
		}
	}
}

func TestVerify_CrossHasherParameters(t *testing.T) {
	// Verification re-derives parameters from the encoded hash, so a
	// hasher configured differently still verifies older hashes.
	old := NewHasher(WithTime(2), WithMemory(16*1024), WithThreads(2))
	encoded, err := old.Hash("secret")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}

	current := testHasher()
	if !current.Verify("secret", encoded) {
		t.Error("Verify() should honor the parameters embedded in the hash")
	}
}
