package vmscript

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
)

const (
	txVersion    = 0x00
	txTypeInvoke = 0xd1

	// DefaultGasPrice and DefaultGasLimit are ignored by pre-executed transactions
	// but must still be present in the serialized form.
	DefaultGasPrice = 500
	DefaultGasLimit = 20000
)

// Transaction is an unsigned invoke transaction, only meant for pre-execution.
type Transaction struct {
	Nonce    uint32
	GasPrice uint64
	GasLimit uint64
	Payer    [ContractLen]byte
	Code     []byte
}

// NewInvokeTransaction wraps an invocation script into a transaction.
func NewInvokeTransaction(nonce uint32, code []byte) *Transaction {
	return &Transaction{
		Nonce:    nonce,
		GasPrice: DefaultGasPrice,
		GasLimit: DefaultGasLimit,
		Code:     code,
	}
}

// Serialize returns the wire form of the transaction.
func (tx *Transaction) Serialize() []byte {
	var buf bytes.Buffer

	buf.WriteByte(txVersion)
	buf.WriteByte(txTypeInvoke)
	writeUint32(&buf, tx.Nonce)
	writeUint64(&buf, tx.GasPrice)
	writeUint64(&buf, tx.GasLimit)
	buf.Write(tx.Payer[:])

	writeVarUint(&buf, uint64(len(tx.Code)))
	buf.Write(tx.Code)

	// No attributes, no signatures.
	writeVarUint(&buf, 0)
	writeVarUint(&buf, 0)

	return buf.Bytes()
}

// SerializeHex returns the hex encoded wire form of the transaction.
func (tx *Transaction) SerializeHex() string {
	return hex.EncodeToString(tx.Serialize())
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	buf.Write(b)
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	buf.Write(b)
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	buf.Write(b)
}

func writeVarUint(buf *bytes.Buffer, v uint64) {
	switch {
	case v < 0xfd:
		buf.WriteByte(byte(v))
	case v <= 0xffff:
		buf.WriteByte(0xfd)
		writeUint16(buf, uint16(v))
	case v <= 0xffffffff:
		buf.WriteByte(0xfe)
		writeUint32(buf, uint32(v))
	default:
		buf.WriteByte(0xff)
		writeUint64(buf, v)
	}
}
