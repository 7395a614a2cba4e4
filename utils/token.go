package utils

import (
	"fmt"
	"math/rand"
)

const tokenCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func GenerateRandomToken(length int) string {
	token := make([]byte, length)
	for i := range token {
		token[i] = tokenCharset[rand.Intn(len(tokenCharset))]
	}
	return string(token)
}

// GenerateNumericCode returns an n-digit code for verification emails.
func GenerateNumericCode(n int) string {
	max := 1
	for i := 0; i < n; i++ {
		max *= 10
	}
	return fmt.Sprintf("%0*d", n, rand.Intn(max))
}
