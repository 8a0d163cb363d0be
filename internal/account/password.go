package account

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/oggyb/socialgraph/internal/db"
)

// newSalt returns a random per-user salt.
func newSalt() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// presalt binds the password to the user's salt. The HMAC output has a fixed
// length, which keeps long passwords under bcrypt's 72 byte limit.
func presalt(password, salt string) []byte {
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(password))
	return []byte(hex.EncodeToString(mac.Sum(nil)))
}

func hashPassword(password, salt string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(presalt(password, salt), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// SetPassword gives u a fresh salt and the matching password hash.
func SetPassword(u *db.User, password string, cost int) error {
	salt, err := newSalt()
	if err != nil {
		return err
	}
	hash, err := hashPassword(password, salt, cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.Salt, u.PasswordHash = salt, hash
	return nil
}

func checkPassword(hash, password, salt string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), presalt(password, salt)) == nil
}

// newAuthToken returns a random URL-safe token.
func newAuthToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
