package utils

import "math/rand"

const (
	letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits  = "0123456789"
)

// GenerateReferCode returns a referral code like "PRK08F": 3 letters,
// 2 digits, 1 letter. Uniqueness is the caller's concern.
func GenerateReferCode() string {
	buf := make([]byte, 6)
	for i := 0; i < 3; i++ {
		buf[i] = letters[rand.Intn(len(letters))]
	}
	for i := 3; i < 5; i++ {
		buf[i] = digits[rand.Intn(len(digits))]
	}
	buf[5] = letters[rand.Intn(len(letters))]
	return string(buf)
}

// GenerateCaptcha returns a challenge like "ABC12": 3 letters + 2 digits.
func GenerateCaptcha() string {
	buf := make([]byte, 5)
	for i := 0; i < 3; i++ {
		buf[i] = letters[rand.Intn(len(letters))]
	}
	for i := 3; i < 5; i++ {
		buf[i] = digits[rand.Intn(len(digits))]
	}
	return string(buf)
}
