package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"oep4-squirrel/models"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// DefaultTimeout bounds a single explorer call when none is configured.
const DefaultTimeout = 15 * time.Second

// AssetBalance is one row of the address balance endpoint.
type AssetBalance struct {
	AssetName string          `json:"AssetName"`
	AssetType string          `json:"AssetType"`
	Balance   decimal.Decimal `json:"Balance"`
}

// TransferLine is one asset movement inside a transaction.
type TransferLine struct {
	FromAddress string      `json:"FromAddress"`
	ToAddress   string      `json:"ToAddress"`
	AssetName   string      `json:"AssetName"`
	Amount      json.Number `json:"Amount"`
}

// Transaction is one entry of the address transaction history.
type Transaction struct {
	TxnHash      string         `json:"TxnHash"`
	TxnType      int            `json:"TxnType"`
	TxnTime      int64          `json:"TxnTime"`
	ConfirmFlag  int            `json:"ConfirmFlag"`
	TransferList []TransferLine `json:"TransferList"`
}

type responseCommon struct {
	Action  string `json:"Action"`
	Error   int64  `json:"Error"`
	Desc    string `json:"Desc"`
	Version string `json:"Version"`
}

type balanceResponse struct {
	responseCommon
	Result []AssetBalance `json:"Result"`
}

type transactionsResponse struct {
	responseCommon
	Result *struct {
		Total   int           `json:"Total"`
		TxnList []Transaction `json:"TxnList"`
	} `json:"Result"`
}

// Client talks to the explorer service of each network.
type Client struct {
	clients map[models.Network]*resty.Client
}

// NewClient creates an explorer client, explorers maps each network to its base url.
func NewClient(explorers map[models.Network]string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	clients := make(map[models.Network]*resty.Client, len(explorers))
	for net, baseURL := range explorers {
		clients[net] = resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json")
	}

	return &Client{clients: clients}
}

// Balances returns the native asset balances of address.
func (c *Client) Balances(ctx context.Context, net models.Network, address string) ([]AssetBalance, error) {
	result := balanceResponse{}

	err := c.get(ctx, net, "/api/v1/explorer/address/balance/{address}", map[string]string{
		"address": address,
	}, &result)
	if err != nil {
		return nil, err
	}

	if err := result.check(); err != nil {
		return nil, err
	}

	return result.Result, nil
}

// Transactions returns one page of the transaction history of address, most recent first.
func (c *Client) Transactions(ctx context.Context, net models.Network, address string, page, pageSize int) ([]Transaction, error) {
	result := transactionsResponse{}

	err := c.get(ctx, net, "/api/v1/explorer/address/{address}/{pageSize}/{page}", map[string]string{
		"address":  address,
		"pageSize": strconv.Itoa(pageSize),
		"page":     strconv.Itoa(page),
	}, &result)
	if err != nil {
		return nil, err
	}

	if err := result.check(); err != nil {
		return nil, err
	}

	if result.Result == nil {
		return nil, nil
	}

	return result.Result.TxnList, nil
}

// RegisterToken announces an OEP4 contract to the explorer indexer.
func (c *Client) RegisterToken(ctx context.Context, net models.Network, contract string) error {
	client, err := c.client(net)
	if err != nil {
		return err
	}

	resp, err := client.R().
		SetContext(ctx).
		SetBody(map[string]string{"scriptHash": contract}).
		Post("/api/v1/explorer/oep4/info")
	if err != nil {
		return models.TransportError(err)
	}

	if resp.IsError() {
		return models.NewError(models.ErrNetwork, fmt.Errorf("explorer returned %s: %s", resp.Status(), resp.String()))
	}

	return nil
}

func (c *Client) get(ctx context.Context, net models.Network, path string, params map[string]string, target interface{}) error {
	client, err := c.client(net)
	if err != nil {
		return err
	}

	resp, err := client.R().
		SetContext(ctx).
		SetPathParams(params).
		SetResult(target).
		Get(path)
	if err != nil {
		return models.TransportError(err)
	}

	if resp.IsError() {
		return models.NewError(models.ErrNetwork, fmt.Errorf("explorer returned %s", resp.Status()))
	}

	return nil
}

func (c *Client) client(net models.Network) (*resty.Client, error) {
	client, ok := c.clients[net]
	if !ok {
		return nil, models.NewError(models.ErrNetwork, fmt.Errorf("no explorer configured for %s", net))
	}

	return client, nil
}

func (r *responseCommon) check() error {
	if r.Error != 0 {
		return models.NewError(models.ErrNetwork, fmt.Errorf("explorer error %d: %s", r.Error, r.Desc))
	}

	return nil
}
