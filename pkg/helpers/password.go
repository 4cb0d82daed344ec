package helpers

import "golang.org/x/crypto/bcrypt"

// bcryptCost stays at the library default; raise it here if hardware allows.
const bcryptCost = bcrypt.DefaultCost

// HashPassword produces a bcrypt hash of the given password. Only the hash
// is ever persisted.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword reports whether the password matches the stored
// hash. bcrypt performs the comparison in constant time.
func CompareHashAndPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
