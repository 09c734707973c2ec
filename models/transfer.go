package models

// TransferRecord is one transfer line attributed to a tracked token.
// Amount carries a leading sign: '-' when the wallet sent it, '+' otherwise.
type TransferRecord struct {
	TxHash string `json:"txHash"`
	Asset  string `json:"asset"`
	Amount string `json:"amount"`
}
