package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateReferCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z]{3}[0-9]{2}[A-Z]$`)
	for i := 0; i < 100; i++ {
		require.Regexp(t, pattern, GenerateReferCode())
	}
}

func TestGenerateCaptchaFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z]{3}[0-9]{2}$`)
	for i := 0; i < 100; i++ {
		require.Regexp(t, pattern, GenerateCaptcha())
	}
}
