package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	DefaultAliasLength = 6
	alphabet           = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

func GenerateAlias() (string, error) {
	return GenerateAliasWithLength(DefaultAliasLength)
}

func GenerateAliasWithLength(length int) (string, error) {
	code := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := range code {
		randomIndex, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		code[i] = alphabet[randomIndex.Int64()]
	}

	return string(code), nil
}
