// Package mercadopago adapts the Mercado Pago Checkout Pro API to the payment gateway port.
package mercadopago

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"localscout-booking/internal/pkg/errs"
	"localscout-booking/internal/usecase/shared"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/mperror"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

const statusApproved = "approved"

type Client struct {
	preferences preference.Client
	payments    payment.Client
	sandbox     bool
}

func NewClient(accessToken string, sandbox bool) (*Client, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, errs.Wrap(err, "mercadopago config")
	}
	return &Client{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
		sandbox:     sandbox,
	}, nil
}

// CreateCheckout opens a Checkout Pro preference. Mercado Pago notifications
// carry only the payment id, so the transaction id rides on the notification URL.
func (c *Client) CreateCheckout(ctx context.Context, req shared.CheckoutRequest) (*shared.CheckoutSession, error) {
	first, last, _ := strings.Cut(req.Customer.Name, " ")
	pref, err := c.preferences.Create(ctx, preference.Request{
		Items: []preference.ItemRequest{{
			ID:         req.TransactionID,
			Title:      req.ProductName,
			Quantity:   1,
			UnitPrice:  req.Amount.Float64(),
			CurrencyID: req.Currency,
		}},
		Payer: &preference.PayerRequest{
			Name:    first,
			Surname: last,
			Email:   req.Customer.Email,
		},
		BackURLs: &preference.BackURLsRequest{
			Success: req.SuccessURL,
			Failure: req.FailURL,
			Pending: req.CancelURL,
		},
		ExternalReference: req.TransactionID,
		NotificationURL:   withQuery(req.IPNURL, "tran_id", req.TransactionID),
	})
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "create preference"), shared.ErrGatewayUnavailable)
	}

	redirect := pref.InitPoint
	if c.sandbox && pref.SandboxInitPoint != "" {
		redirect = pref.SandboxInitPoint
	}
	if redirect == "" {
		return nil, errs.Mark(errs.Newf("preference %s has no init point", pref.ID), shared.ErrGatewayRejected)
	}
	return &shared.CheckoutSession{RedirectURL: redirect, SessionKey: pref.ID}, nil
}

// ValidateTransaction looks the payment up by id; valID is the notification's data.id.
func (c *Client) ValidateTransaction(ctx context.Context, valID string) (*shared.ValidationResult, error) {
	id, err := strconv.Atoi(strings.TrimSpace(valID))
	if err != nil {
		return nil, errs.Mark(errs.Wrapf(err, "payment id %q", valID), shared.ErrGatewayRejected)
	}

	p, err := c.payments.Get(ctx, id)
	if err != nil {
		return nil, lookupError(err, id)
	}

	result := &shared.ValidationResult{
		Status:        strings.ToUpper(p.Status),
		TransactionID: p.ExternalReference,
		Amount:        strconv.FormatFloat(p.TransactionAmount, 'f', 2, 64),
		Currency:      p.CurrencyID,
		Reference:     strconv.Itoa(p.ID),
	}
	if p.Status == statusApproved {
		result.Valid = true
		result.Status = shared.PaymentStatusValid
	}
	return result, nil
}

func withQuery(raw, key, value string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}

// lookupError splits payment lookup failures: a 4xx means the id will never
// resolve (bogus or another account's payment), anything else is worth a retry.
func lookupError(err error, id int) error {
	wrapped := errs.Wrapf(err, "get payment %d", id)

	var respErr *mperror.ResponseError
	if errors.As(err, &respErr) {
		code := respErr.StatusCode
		if code >= 400 && code < 500 && code != http.StatusRequestTimeout && code != http.StatusTooManyRequests {
			return errs.Mark(wrapped, shared.ErrGatewayRejected)
		}
	}
	return errs.Mark(wrapped, shared.ErrGatewayUnavailable)
}
