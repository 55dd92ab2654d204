package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the cost used for every stored credential.
const bcryptCost = 12

// dummyHash is a syntactically valid bcrypt hash compared against when no
// account exists, so the unknown-identity and wrong-secret paths spend
// comparable effort.
const dummyHash = "$2a$12$K3JNi5xUgUdrd0mFTxmB0eZQ8XWS3q1O9nVvQxDD0PFG1u0yBOR9S"

// HashPassword hashes a plaintext secret with bcrypt. The salt is generated
// internally; the result is safe to persist.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether candidate matches the stored hash.
func CheckPassword(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}

// DummyCompare burns one bcrypt comparison against a fixed hash. Called on
// the no-such-account login path to keep it observationally close to the
// wrong-password path.
func DummyCompare(candidate string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(candidate))
}
