package messaging

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"strconv"
	"time"

	"golang.org/x/crypto/argon2"
)

// deriveKey mixes the server secret, the message timestamp and the per-message
// salt into a 256-bit AES key.
func deriveKey(secret []byte, createdAt time.Time, salt []byte) []byte {
	password := append([]byte{}, secret...)
	password = strconv.AppendInt(password, createdAt.Unix(), 10)
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

func seal(key, plaintext []byte) (ciphertext, nonce []byte, err error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}

	nonce, err = randomBytes(aesgcm.NonceSize())
	if err != nil {
		return nil, nil, err
	}
	return aesgcm.Seal(nil, nonce, plaintext, nil), nonce, nil
}

func open(key, ciphertext, nonce []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return aesgcm.Open(nil, nonce, ciphertext, nil)
}
