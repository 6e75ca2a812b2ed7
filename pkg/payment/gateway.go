// Package payment talks to the external payment gateway and verifies its
// signatures.
//
// The gateway contract is deliberately small: CreateOrder exchanges an amount
// for an opaque gateway order handle before the client-side payment widget
// runs, and VerifySignature proves that a completed payment was authorized by
// the gateway rather than forged by the client.
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shashiranjanraj/campuskart/config"
	"github.com/shashiranjanraj/campuskart/pkg/http"
)

// GatewayOrder is the handle returned by the gateway for a pending payment.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // minor units
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// Client is a payment-gateway API client.
type Client struct {
	baseURL string
	keyID   string
	secret  string
}

// NewClient builds a Client from the PAYMENT_* config keys.
func NewClient() *Client {
	return &Client{
		baseURL: config.PaymentBaseURL(),
		keyID:   config.PaymentKeyID(),
		secret:  config.PaymentKeySecret(),
	}
}

// NewClientWith builds a Client with explicit credentials (used in tests).
func NewClientWith(baseURL, keyID, secret string) *Client {
	return &Client{baseURL: baseURL, keyID: keyID, secret: secret}
}

// CreateOrder registers a pending payment of amount minor units with the
// gateway and returns its opaque order handle.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency string) (GatewayOrder, error) {
	var order GatewayOrder

	if c.keyID == "" || c.secret == "" {
		return order, fmt.Errorf("payment: gateway credentials not configured")
	}
	if amount <= 0 {
		return order, fmt.Errorf("payment: amount must be positive, got %d", amount)
	}

	resp, err := http.Post(c.baseURL+"/orders").
		Header("Authorization", basicAuth(c.keyID, c.secret)).
		Body(map[string]interface{}{
			"amount":   amount,
			"currency": currency,
		}).
		Timeout(10 * time.Second).
		Retry(3, 500*time.Millisecond).
		WithContext(ctx).
		Send()
	if err != nil {
		return order, fmt.Errorf("payment: create order: %w", err)
	}
	if err := resp.Throw(); err != nil {
		return order, fmt.Errorf("payment: create order: %w", err)
	}

	if err := resp.JSON(&order); err != nil {
		return order, fmt.Errorf("payment: create order: %w", err)
	}
	return order, nil
}

// Sign computes the gateway signature for an (order, payment) pair:
// hex(HMAC-SHA256(secret, orderID + "|" + paymentID)).
func (c *Client) Sign(gatewayOrderID, gatewayPaymentID string) string {
	mac := hmac.New(sha256.New, []byte(c.secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature matches the expected HMAC for
// the (order, payment) pair. Comparison is constant-time.
func (c *Client) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	expected := c.Sign(gatewayOrderID, gatewayPaymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func basicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}
