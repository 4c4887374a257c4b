// Package sslcommerz talks to an SSLCommerz-style hosted checkout:
// a form POST opens a session and a JSON validator confirms payments.
package sslcommerz

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"localscout-booking/internal/pkg/errs"
	"localscout-booking/internal/usecase/shared"
)

const (
	sessionPath    = "/gwprocess/v4/api.php"
	validationPath = "/validator/api/validationserverAPI.php"

	// Gateways answer with a page or JSON of a few kB.
	maxResponseBytes = 1 << 20
)

type Config struct {
	BaseURL       string
	StoreID       string
	StorePassword string
}

type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, http: httpClient}
}

type sessionResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	SessionKey     string `json:"sessionkey"`
	GatewayPageURL string `json:"GatewayPageURL"`
}

type validationResponse struct {
	Status     string `json:"status"`
	TranID     string `json:"tran_id"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	BankTranID string `json:"bank_tran_id"`
	// Amount and currency as requested at checkout, before any conversion.
	CurrencyType   string `json:"currency_type"`
	CurrencyAmount string `json:"currency_amount"`
}

func (c *Client) CreateCheckout(ctx context.Context, req shared.CheckoutRequest) (*shared.CheckoutSession, error) {
	form := url.Values{}
	form.Set("store_id", c.cfg.StoreID)
	form.Set("store_passwd", c.cfg.StorePassword)
	form.Set("total_amount", req.Amount.String())
	form.Set("currency", req.Currency)
	form.Set("tran_id", req.TransactionID)
	form.Set("success_url", req.SuccessURL)
	form.Set("fail_url", req.FailURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("ipn_url", req.IPNURL)
	form.Set("cus_name", req.Customer.Name)
	form.Set("cus_email", req.Customer.Email)
	form.Set("cus_phone", req.Customer.Phone)
	form.Set("product_name", req.ProductName)
	form.Set("product_category", "service")
	form.Set("product_profile", "general")
	form.Set("shipping_method", "NO")
	form.Set("num_of_item", "1")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+sessionPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "build session request"), shared.ErrGatewayRejected)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out sessionResponse
	if err := c.do(httpReq, &out); err != nil {
		return nil, err
	}
	if !strings.EqualFold(out.Status, "SUCCESS") || out.GatewayPageURL == "" {
		return nil, errs.Mark(errs.Newf("session status %q: %s", out.Status, out.FailedReason), shared.ErrGatewayRejected)
	}
	return &shared.CheckoutSession{RedirectURL: out.GatewayPageURL, SessionKey: out.SessionKey}, nil
}

func (c *Client) ValidateTransaction(ctx context.Context, valID string) (*shared.ValidationResult, error) {
	q := url.Values{}
	q.Set("val_id", valID)
	q.Set("store_id", c.cfg.StoreID)
	q.Set("store_passwd", c.cfg.StorePassword)
	q.Set("format", "json")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+validationPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "build validation request"), shared.ErrGatewayRejected)
	}

	var out validationResponse
	if err := c.do(httpReq, &out); err != nil {
		return nil, err
	}

	status := strings.ToUpper(strings.TrimSpace(out.Status))
	amount, currency := out.Amount, out.Currency
	if out.CurrencyType != "" && out.CurrencyAmount != "" {
		amount, currency = out.CurrencyAmount, out.CurrencyType
	}
	return &shared.ValidationResult{
		Valid:         status == shared.PaymentStatusValid || status == shared.PaymentStatusValidated,
		Status:        status,
		TransactionID: out.TranID,
		Amount:        amount,
		Currency:      currency,
		Reference:     out.BankTranID,
	}, nil
}

// do classifies failures: anything that might succeed on retry is
// ErrGatewayUnavailable, a definite refusal is ErrGatewayRejected.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return errs.Mark(errs.Wrapf(err, "%s %s", req.Method, req.URL.Path), shared.ErrGatewayUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errs.Mark(errs.Wrap(err, "read gateway response"), shared.ErrGatewayUnavailable)
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return errs.Mark(errs.Newf("gateway returned %d", resp.StatusCode), shared.ErrGatewayUnavailable)
	case resp.StatusCode >= http.StatusBadRequest:
		return errs.Mark(errs.Newf("gateway returned %d", resp.StatusCode), shared.ErrGatewayRejected)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errs.Mark(errs.Wrapf(err, "decode gateway response (%d bytes)", len(body)), shared.ErrGatewayUnavailable)
	}
	return nil
}
