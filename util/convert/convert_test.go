package convert

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDecodeUTF8(t *testing.T) {
	testCases := map[string]string{
		"4c75636b7920546f6b656e": "Lucky Token",
		"0x4c4359":               "LCY",
		"":                       placeholder,
		"zz":                     placeholder,
		"ff":                     placeholder,
	}

	for byteStr, want := range testCases {
		get := DecodeUTF8(byteStr, placeholder)
		if get != want {
			t.Fatalf("DecodeUTF8(%q) get=%q, want=%q", byteStr, get, want)
		}
	}
}

const placeholder = "OEP4"

func TestDecodeUint(t *testing.T) {
	testCases := map[string]uint64{
		"08":   8,
		"12":   18,
		"0x0a": 10,
		"":     0,
		"xyz":  0,
	}

	for hexStr, want := range testCases {
		get := DecodeUint(hexStr)
		if get != want {
			t.Fatalf("DecodeUint(%q) get=%d, want=%d", hexStr, get, want)
		}
	}
}

func TestDecodeScaledBalance(t *testing.T) {
	testCases := []struct {
		hexStr   string
		decimals uint
		want     string
	}{
		{"3930", 2, "123.45"},
		{"3930", 0, "12345"},
		{"", 8, "0"},
		{"00", 8, "0"},
		{"not-hex", 8, "0"},
		{"00e1f505", 8, "1"},
		{"00e40b5402", 9, "10"},
	}

	for _, tc := range testCases {
		get := DecodeScaledBalance(tc.hexStr, tc.decimals)
		want := decimal.RequireFromString(tc.want)
		if !get.Equal(want) {
			t.Fatalf("DecodeScaledBalance(%q, %d) get=%s, want=%s", tc.hexStr, tc.decimals, get, want)
		}
	}
}

func TestDecodeScaledBalanceExact(t *testing.T) {
	// 2^200 - 1 does not fit into a float64 mantissa.
	n := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 200), big.NewInt(1))
	little := hex.EncodeToString(ReverseBytes(n.Bytes()))

	for _, decimals := range []uint{0, 1, 8, 18, 40} {
		get := DecodeScaledBalance(little, decimals)
		divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)

		back := get.Mul(decimal.NewFromBigInt(divisor, 0))
		if back.BigInt().Cmp(n) != 0 || !back.Equal(decimal.NewFromBigInt(n, 0)) {
			t.Fatalf("decimals=%d: get=%s, scaled back=%s, want=%s", decimals, get, back, n)
		}
	}
}

func TestDecodeScaledBalanceDecimalsOutOfRange(t *testing.T) {
	for _, decimals := range []uint{MaxDecimals + 1, 1<<31 - 1, 1 << 31, 1<<32 - 1, 1<<32 + 2} {
		if get := DecodeScaledBalance("64", decimals); !get.IsZero() {
			t.Fatalf("decimals=%d, get=%s, want=0", decimals, get)
		}
	}

	want := decimal.New(100, -MaxDecimals)
	if get := DecodeScaledBalance("64", MaxDecimals); !get.Equal(want) {
		t.Fatalf("get=%s, want=%s", get, want)
	}
}

func TestReverseHex(t *testing.T) {
	get, err := ReverseHex("0xff7a8e5c5c0bf7a5cf3b5a8d0cc0e6e1d2a4a0c1")
	if err != nil {
		t.Fatal(err)
	}

	want := "c1a0a4d2e1e6c00c8d5a3bcfa5f70b5c5c8e7aff"
	if get != want {
		t.Fatalf("get=%s, want=%s", get, want)
	}

	if _, err := ReverseHex("squirrel"); err == nil {
		t.Fatalf("get error=nil, want an error")
	}
}
