package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"oep4-squirrel/models"
	"oep4-squirrel/util/log"
	"time"

	eParser "github.com/go-errors/errors"
	"github.com/valyala/fasthttp"
)

// DefaultTimeout bounds a single node call when none is configured.
const DefaultTimeout = 15 * time.Second

// restResponse is the common envelope of Ontology node REST responses.
type restResponse struct {
	Action  string          `json:"Action"`
	Desc    string          `json:"Desc"`
	Error   int64           `json:"Error"`
	Result  json.RawMessage `json:"Result"`
	Version string          `json:"Version"`
}

// Client queries Ontology nodes over their REST interface.
type Client struct {
	client  *fasthttp.Client
	nodes   *nodeSet
	timeout time.Duration
}

// NewClient creates a node client, nodes maps each network to its REST urls.
func NewClient(nodes map[models.Network][]string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		client: &fasthttp.Client{
			MaxConnWaitTimeout: timeout,
			MaxConnsPerHost:    20,
		},
		nodes:   newNodeSet(nodes),
		timeout: timeout,
	}
}

// request sends the request to the nodes of net until one of them answers.
// A node-level error code is returned along with the envelope it came in.
func (c *Client) request(ctx context.Context, net models.Network, method, path string, body []byte) (*restResponse, error) {
	urls := c.nodes.candidates(net)
	if len(urls) == 0 {
		return nil, models.NewError(models.ErrNetwork, fmt.Errorf("no node configured for %s", net))
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.Header.SetMethod(method)
	if body != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}

	var lastErr error

	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return nil, classify(err)
		}

		req.SetRequestURI(url + path)
		resp.Reset()

		err := c.client.DoDeadline(req, resp, c.deadline(ctx))
		if err != nil {
			log.Warnf("Node %s unavailable: %v", url, err)
			c.nodes.markDown(url)
			lastErr = err
			continue
		}

		if resp.StatusCode() != fasthttp.StatusOK {
			c.nodes.markDown(url)
			lastErr = fmt.Errorf("node %s returned http %d", url, resp.StatusCode())
			continue
		}

		c.nodes.markUp(url)

		result := restResponse{}
		if err := json.Unmarshal(resp.Body(), &result); err != nil {
			log.Error(errors.New(eParser.Wrap(err, 0).ErrorStack()))
			log.Errorf("Response: %v", string(resp.Body()))
			return nil, models.NewError(models.ErrNetwork, err)
		}

		if result.Error != 0 {
			err := fmt.Errorf("node error %d: %s", result.Error, result.Desc)
			return &result, models.NewError(models.ErrNetwork, err)
		}

		return &result, nil
	}

	return nil, classify(lastErr)
}

func (c *Client) deadline(ctx context.Context) time.Time {
	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		return ctxDeadline
	}

	return deadline
}

// classify maps a transport failure to TIMEOUT or NETWORK_ERROR, keeping its stack.
func classify(err error) error {
	if err == nil {
		return nil
	}

	return models.TransportError(eParser.Wrap(err, 1))
}
