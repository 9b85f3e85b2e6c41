package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
)

// Supported HMAC hash types
const (
	HashSHA256 = iota
	HashSHA512
	HashSHA512_384
)

var errUnsupportedHashType = errors.New("unsupported hash type")

var hashers = map[int]func() hash.Hash{
	HashSHA256:     sha256.New,
	HashSHA512:     sha512.New,
	HashSHA512_384: sha512.New384,
}

// HexEncodeToString returns the lowercase hex encoding of input
func HexEncodeToString(input []byte) string {
	return hex.EncodeToString(input)
}

// Base64Decode decodes standard padded base64
func Base64Decode(input string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(input)
}

// Base64Encode encodes input as standard padded base64
func Base64Encode(input []byte) string {
	return base64.StdEncoding.EncodeToString(input)
}

// GetHMAC returns the keyed-hash message authentication code of input
func GetHMAC(hashType int, input, key []byte) ([]byte, error) {
	hasher, ok := hashers[hashType]
	if !ok {
		return nil, fmt.Errorf("%w: %d", errUnsupportedHashType, hashType)
	}
	h := hmac.New(hasher, key)
	h.Write(input) //nolint:errcheck // hash.Hash writes never fail
	return h.Sum(nil), nil
}

// GetHMACHex returns GetHMAC as a lowercase hex string
func GetHMACHex(hashType int, input, key []byte) (string, error) {
	sum, err := GetHMAC(hashType, input, key)
	if err != nil {
		return "", err
	}
	return HexEncodeToString(sum), nil
}
