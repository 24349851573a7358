// Package invest adapts the exchange's public API to the broker
// capabilities the trading loop consumes: instrument lookup, candle
// history, a live candle stream, order submission, and account state.
package invest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	investgo "github.com/russianinvestments/invest-api-go-sdk/investgo"
	"github.com/sirupsen/logrus"
)

const (
	ProductionEndpoint = "invest-public-api.tinkoff.ru:443"
	SandboxEndpoint    = "sandbox-invest-public-api.tinkoff.ru:443"

	appName = "investrobot"
)

// Config carries the API credentials. Sandbox switches the endpoint to
// the paper-trading environment.
type Config struct {
	Token     string `yaml:"token"`
	AccountID string `yaml:"account_id"`
	Endpoint  string `yaml:"endpoint"`
	Sandbox   bool   `yaml:"sandbox"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return errors.New("invest: token is required")
	}
	if strings.TrimSpace(c.AccountID) == "" {
		return errors.New("invest: account id is required")
	}
	return nil
}

// Client bundles the API service clients behind one connection.
type Client struct {
	accountID string
	api       *investgo.Client
	log       *logrus.Logger

	instruments *investgo.InstrumentsServiceClient
	marketData  *investgo.MarketDataServiceClient
	mdStream    *investgo.MarketDataStreamClient
	orders      *investgo.OrdersServiceClient
	operations  *investgo.OperationsServiceClient
}

func NewClient(ctx context.Context, cfg Config, log *logrus.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = ProductionEndpoint
		if cfg.Sandbox {
			endpoint = SandboxEndpoint
		}
	}

	api, err := investgo.NewClient(ctx, investgo.Config{
		EndPoint:  endpoint,
		Token:     cfg.Token,
		AppName:   appName,
		AccountId: cfg.AccountID,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("create invest api client: %w", err)
	}

	return &Client{
		accountID:   cfg.AccountID,
		api:         api,
		log:         log,
		instruments: api.NewInstrumentsServiceClient(),
		marketData:  api.NewMarketDataServiceClient(),
		mdStream:    api.NewMarketDataStreamClient(),
		orders:      api.NewOrdersServiceClient(),
		operations:  api.NewOperationsServiceClient(),
	}, nil
}

// Close shuts the API connection down.
func (c *Client) Close() error {
	if err := c.api.Stop(); err != nil {
		return fmt.Errorf("stop invest api client: %w", err)
	}
	return nil
}
