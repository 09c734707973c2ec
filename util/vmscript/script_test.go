package vmscript

import (
	"bytes"
	"encoding/hex"
	"testing"
)

// Script hash ff7a8e5c5c0bf7a5cf3b5a8d0cc0e6e1d2a4a0c1 in VM byte order.
const contractVM = "c1a0a4d2e1e6c00c8d5a3bcfa5f70b5c5c8e7aff"

func mustDecode(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}

	return b
}

func TestInvokeCode(t *testing.T) {
	contract := mustDecode(t, contractVM)
	holder := mustDecode(t, "0000000000000000000000000000000000000001")

	testCases := []struct {
		method string
		args   [][]byte
		want   string
	}{
		{"name", nil, "00c1046e616d6567" + contractVM},
		{"symbol", nil, "00c10673796d626f6c67" + contractVM},
		{"decimals", nil, "00c108646563696d616c7367" + contractVM},
		{
			"balanceOf",
			[][]byte{holder},
			"14000000000000000000000000000000000000000151c10962616c616e63654f6667" + contractVM,
		},
	}

	for _, tc := range testCases {
		code, err := InvokeCode(contract, tc.method, tc.args...)
		if err != nil {
			t.Fatal(err)
		}

		if get := hex.EncodeToString(code); get != tc.want {
			t.Fatalf("Incorrect script for %s\n get: %s\nwant: %s", tc.method, get, tc.want)
		}
	}
}

func TestInvokeCodeInvalidContract(t *testing.T) {
	if _, err := InvokeCode([]byte{0x01, 0x02}, "name"); err == nil {
		t.Fatalf("get error=nil, want an error")
	}
}

func TestPushBytesLong(t *testing.T) {
	var buf bytes.Buffer
	pushBytes(&buf, make([]byte, 80))

	if get := buf.Bytes()[:2]; !bytes.Equal(get, []byte{opPushData1, 80}) {
		t.Fatalf("get prefix=%x, want 4c50", get)
	}
}

func TestTransactionSerialize(t *testing.T) {
	code, err := InvokeCode(mustDecode(t, contractVM), "name")
	if err != nil {
		t.Fatal(err)
	}

	tx := NewInvokeTransaction(1, code)
	want := "00d1" +
		"01000000" +
		"f401000000000000" +
		"204e000000000000" +
		"0000000000000000000000000000000000000000" +
		"1c" + "00c1046e616d6567" + contractVM +
		"00" + "00"

	if get := tx.SerializeHex(); get != want {
		t.Fatalf("Incorrect serialized tx\n get: %s\nwant: %s", get, want)
	}
}
