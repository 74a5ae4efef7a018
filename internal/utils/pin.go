package utils

import "golang.org/x/crypto/bcrypt"

// HashPin hashes a confirmation PIN using bcrypt with the default cost.
func HashPin(pin string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPinHash compares a plaintext PIN with a stored bcrypt hash.
func CheckPinHash(pin, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin))
	return err == nil
}
