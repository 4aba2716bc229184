package client

import (
	"context"

	"github.com/shopspring/decimal"
)

type MonthRevenue struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

type RevenueSummary struct {
	Total   decimal.Decimal `json:"total"`
	Monthly []MonthRevenue  `json:"monthly"`
}

// RevenueClient reads the payment service's revenue aggregate for the admin
// dashboard. Callers wrap it in a Retry policy and treat failures as a
// partial dashboard, never as a request failure.
type RevenueClient interface {
	Summary(ctx context.Context, token string) (*RevenueSummary, error)
}

type revenueClient struct {
	caller *Caller
	retry  Retry
}

func NewRevenueClient(caller *Caller, retry Retry) RevenueClient {
	return &revenueClient{caller: caller, retry: retry}
}

func (c *revenueClient) Summary(ctx context.Context, token string) (*RevenueSummary, error) {
	var summary RevenueSummary
	err := c.retry.Do(ctx, func() error {
		return c.caller.WithToken(token).GetJSON(ctx, "/api/v1/revenue/summary", &summary)
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
