package vmscript

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// NeoVM opcodes used by contract invocation scripts.
const (
	opPush0     = 0x00
	opPushData1 = 0x4c
	opPushData2 = 0x4d
	opPush1     = 0x51
	opPack      = 0xc1
	opAppCall   = 0x67
)

// ContractLen is the length of a contract address in bytes.
const ContractLen = 20

// InvokeCode returns the script invoking method of contract with the given arguments.
// contract is in VM byte order, i.e. the reversed script hash.
//
// Layout: [args reversed] PUSH(len(args)) PACK PUSH(method) APPCALL contract
func InvokeCode(contract []byte, method string, args ...[]byte) ([]byte, error) {
	if len(contract) != ContractLen {
		return nil, fmt.Errorf("invalid contract address length: %d", len(contract))
	}

	var buf bytes.Buffer

	for i := len(args) - 1; i >= 0; i-- {
		pushBytes(&buf, args[i])
	}

	pushInt(&buf, len(args))
	buf.WriteByte(opPack)
	pushBytes(&buf, []byte(method))
	buf.WriteByte(opAppCall)
	buf.Write(contract)

	return buf.Bytes(), nil
}

func pushInt(buf *bytes.Buffer, n int) {
	switch {
	case n == 0:
		buf.WriteByte(opPush0)
	case n > 0 && n <= 16:
		buf.WriteByte(byte(opPush1 - 1 + n))
	default:
		panic(fmt.Sprintf("unsupported argument count %d", n))
	}
}

func pushBytes(buf *bytes.Buffer, data []byte) {
	l := len(data)

	switch {
	case l < opPushData1:
		buf.WriteByte(byte(l))
	case l <= 0xff:
		buf.WriteByte(opPushData1)
		buf.WriteByte(byte(l))
	default:
		buf.WriteByte(opPushData2)
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, uint16(l))
		buf.Write(b)
	}

	buf.Write(data)
}
