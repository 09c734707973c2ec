package hashutil

import (
	"crypto/sha256"
)

// Hash256 returns hash256 of input data bytes.
func Hash256(data []byte) []byte {
	return Sha256(Sha256(data))
}

// Sha256 returns sha256 of input data bytes.
func Sha256(data []byte) []byte {
	sha256H := sha256.New()
	sha256H.Reset()
	sha256H.Write(data)
	return sha256H.Sum(nil)
}

// Checksum returns the checksum for a given piece of data
// using sha256 twice as the hash algorithm.
func Checksum(data []byte) []byte {
	hash := Hash256(data)
	return hash[:4]
}
