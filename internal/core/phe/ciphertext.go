package phe

import (
	"encoding/base64"
	"errors"
	"math/big"
)

// Ciphertext is the storage form of an encrypted value:
// standard base64 of the big-endian bytes of the ciphertext integer
type Ciphertext string

// EncodeCiphertext converts a ciphertext integer to its storage form
func EncodeCiphertext(c *big.Int) Ciphertext {
	return Ciphertext(base64.StdEncoding.EncodeToString(c.Bytes()))
}

// Int decodes the storage form back to the ciphertext integer
func (c Ciphertext) Int() (*big.Int, error) {
	if c == "" {
		return nil, errors.New("phe: empty ciphertext")
	}
	raw, err := base64.StdEncoding.DecodeString(string(c))
	if err != nil {
		return nil, errors.New("phe: ciphertext is not base64")
	}
	return new(big.Int).SetBytes(raw), nil
}

// String returns the encoded form
func (c Ciphertext) String() string { return string(c) }
