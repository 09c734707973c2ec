package base58

import (
	"bytes"
	"errors"
	"fmt"
	"oep4-squirrel/util/hashutil"

	"github.com/mr-tron/base58"
)

// AddressVersion is the leading byte of every Ontology account address.
const AddressVersion = 0x17

// CheckDecode decides base58 with checksum check.
func CheckDecode(s string) (b []byte, err error) {
	b, err = base58.Decode(s)
	if err != nil {
		return nil, err
	}

	if len(b) < 5 {
		return nil, errors.New("invalid base-58 check string: missing checksum")
	}

	if !bytes.Equal(hashutil.Checksum(b[:len(b)-4]), b[len(b)-4:]) {
		return nil, errors.New("invalid base-58 check string: invalid checksum")
	}

	// Trim last 4 bytes.
	b = b[:len(b)-4]

	return b, nil
}

// CheckEncode encodes the given bytes into
// base58 encoding with checksum appended to it.
func CheckEncode(b []byte) string {
	b = append(b, hashutil.Checksum(b)...)
	return base58.Encode(b)
}

// AddressToBytes returns the 20 raw bytes behind an account address.
// E.g., AFmseVrdL9f9oyCzZefL9tG6UbvhUMqNMV -> 0000000000000000000000000000000000000001
func AddressToBytes(address string) ([]byte, error) {
	b, err := CheckDecode(address)
	if err != nil {
		return nil, err
	}

	if len(b) != 21 || b[0] != AddressVersion {
		return nil, fmt.Errorf("invalid address: %s", address)
	}

	return b[1:21], nil
}

// BytesToAddress encodes 20 raw bytes as an account address.
func BytesToAddress(raw []byte) string {
	b := append([]byte{AddressVersion}, raw...)
	return CheckEncode(b)
}
