package convert

import (
	"encoding/hex"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// DecodeUTF8 interprets a hex byte-string as UTF-8 text.
// Empty, malformed or non UTF-8 values yield the fallback.
func DecodeUTF8(byteStr, fallback string) string {
	str, err := ByteStrToStr(byteStr)
	if err != nil || len(str) == 0 || !utf8.ValidString(str) {
		return fallback
	}

	return str
}

// DecodeUint parses a hex string as a base-16 unsigned integer,
// absent or malformed values yield 0.
// E.g., "08" -> 8.
func DecodeUint(hexStr string) uint64 {
	hexStr = trimHex(hexStr)
	if len(hexStr) == 0 {
		return 0
	}

	val, ok := new(big.Int).SetString(hexStr, 16)
	if !ok || !val.IsUint64() {
		return 0
	}

	return val.Uint64()
}

// MaxDecimals is the largest decimal count a token amount may declare.
const MaxDecimals = 255

// DecodeScaledBalance parses a little-endian hex integer and divides it by 10^decimals.
// The division is exact, absent or malformed values yield 0.
// E.g., "3930" with 2 decimals -> 123.45.
func DecodeScaledBalance(hexStr string, decimals uint) decimal.Decimal {
	raw, err := hex.DecodeString(trimHex(hexStr))
	if err != nil || len(raw) == 0 {
		return decimal.Zero
	}

	return AmountReadable(BytesToBigInt(raw), decimals)
}

// AmountReadable returns decimals-formatted amount.
// E.g., 100000000 unit of ONG with 9 decimals will return 0.1.
// Decimals above MaxDecimals yield 0.
func AmountReadable(amount *big.Int, decimals uint) decimal.Decimal {
	if amount == nil || decimals > MaxDecimals {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(amount, -int32(decimals))
}

// BytesToBigInt converts little-endian byte array to *big.Int.
func BytesToBigInt(data []byte) *big.Int {
	dataRev := ReverseBytes(data)
	val := new(big.Int).SetBytes(dataRev)
	return val
}

// ByteStrToStr converts byte-string to string.
func ByteStrToStr(byteStr string) (string, error) {
	bytes, err := hex.DecodeString(trimHex(byteStr))
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

// ReverseBytes reverses the given bytes,
// the origin bytes remain unchanged.
func ReverseBytes(raw []byte) []byte {
	reversed := make([]byte, len(raw))

	for i := len(raw) - 1; i >= 0; i-- {
		reversed[len(raw)-i-1] = raw[i]
	}

	return reversed
}

// ReverseHex reverses the byte order of a hex string.
func ReverseHex(hexStr string) (string, error) {
	raw, err := hex.DecodeString(trimHex(hexStr))
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(ReverseBytes(raw)), nil
}

func trimHex(hexStr string) string {
	hexStr = strings.TrimSpace(hexStr)
	hexStr = strings.TrimPrefix(hexStr, "0x")
	return strings.TrimPrefix(hexStr, "0X")
}
