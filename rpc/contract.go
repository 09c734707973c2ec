package rpc

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand"
	"oep4-squirrel/models"
	"oep4-squirrel/util/convert"
	"oep4-squirrel/util/vmscript"
	"strings"

	"github.com/valyala/fasthttp"
)

// PreExecResult represents the result of a pre-executed transaction.
type PreExecResult struct {
	State  byte   `json:"State"`
	Gas    uint64 `json:"Gas"`
	Result string `json:"-"`
}

// Succeeded tells if the VM halted normally.
func (r *PreExecResult) Succeeded() bool {
	return r.State == 1
}

type preExecResult struct {
	State  byte            `json:"State"`
	Gas    uint64          `json:"Gas"`
	Result json.RawMessage `json:"Result"`
}

type sendRawTxRequest struct {
	Action  string `json:"Action"`
	Version string `json:"Version"`
	Data    string `json:"Data"`
}

// GetContract tells if the contract is deployed on net.
// contract is the script hash as displayed, e.g. ff7a8e5c5c0bf7a5cf3b5a8d0cc0e6e1d2a4a0c1.
func (c *Client) GetContract(ctx context.Context, net models.Network, contract string) (bool, error) {
	path := "/api/v1/contract/" + strings.TrimPrefix(contract, "0x")

	resp, err := c.request(ctx, net, fasthttp.MethodGet, path, nil)
	// Nodes report an unknown contract either with an empty result or with
	// an error code and an empty result.
	if resp != nil && isEmptyResult(resp.Result) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// PreExecInvoke builds an invoke transaction calling method of contract and
// submits it for pre-execution. Nothing is committed on chain.
func (c *Client) PreExecInvoke(ctx context.Context, net models.Network, contract, method string, args ...[]byte) (*PreExecResult, error) {
	contractVM, err := contractToVM(contract)
	if err != nil {
		return nil, err
	}

	code, err := vmscript.InvokeCode(contractVM, method, args...)
	if err != nil {
		return nil, err
	}

	tx := vmscript.NewInvokeTransaction(rand.Uint32(), code)
	body, err := json.Marshal(sendRawTxRequest{
		Action:  "sendrawtransaction",
		Version: "1.0.0",
		Data:    tx.SerializeHex(),
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.request(ctx, net, fasthttp.MethodPost, "/api/v1/transaction?preExec=1", body)
	if err != nil {
		return nil, err
	}

	if isEmptyResult(resp.Result) {
		return nil, models.NewError(models.ErrNetwork, fmt.Errorf("empty pre-execution result of %s.%s", contract, method))
	}

	raw := preExecResult{}
	if err := json.Unmarshal(resp.Result, &raw); err != nil {
		return nil, models.NewError(models.ErrNetwork, err)
	}

	result := PreExecResult{
		State: raw.State,
		Gas:   raw.Gas,
	}

	// Only a single byte-string return value is meaningful for OEP4 queries.
	var value string
	if json.Unmarshal(raw.Result, &value) == nil {
		result.Result = value
	}

	return &result, nil
}

// contractToVM converts a displayed script hash to VM byte order.
func contractToVM(contract string) ([]byte, error) {
	reversed, err := convert.ReverseHex(contract)
	if err != nil {
		return nil, fmt.Errorf("invalid contract hash %s: %v", contract, err)
	}

	return hex.DecodeString(reversed)
}

func isEmptyResult(raw json.RawMessage) bool {
	switch strings.TrimSpace(string(raw)) {
	case "", "null", `""`, "{}", "[]":
		return true
	default:
		return false
	}
}
