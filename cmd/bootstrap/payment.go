package bootstrap

import (
	"fmt"
	"net/http"
	"strings"

	"localscout-booking/internal/infra/payment/mercadopago"
	"localscout-booking/internal/infra/payment/sslcommerz"
	"localscout-booking/internal/pkg/config"
	"localscout-booking/internal/usecase/commands"
	"localscout-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		NewPaymentGateway,
		NewCheckoutSettings,
	),
)

func NewPaymentGateway(cfg config.Config) (shared.PaymentGateway, error) {
	switch strings.ToLower(cfg.Payment.Driver) {
	case "sslcommerz":
		return sslcommerz.NewClient(sslcommerz.Config{
			BaseURL:       cfg.Payment.BaseURL,
			StoreID:       cfg.Payment.StoreID,
			StorePassword: cfg.Payment.StorePassword,
		}, &http.Client{}), nil
	case "mercadopago":
		client, err := mercadopago.NewClient(cfg.Payment.AccessToken, strings.Contains(cfg.Payment.BaseURL, "sandbox"))
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown PAYMENT_DRIVER %q", cfg.Payment.Driver)
	}
}

func NewCheckoutSettings(cfg config.Config) commands.CheckoutSettings {
	return commands.CheckoutSettings{
		Currency:          cfg.Booking.Currency,
		SuccessURL:        cfg.Payment.CallbackURL("/payment/success"),
		FailURL:           cfg.Payment.CallbackURL("/payment/fail"),
		CancelURL:         cfg.Payment.CallbackURL("/payment/cancel"),
		IPNURL:            cfg.Payment.CallbackURL("/payment/webhook"),
		LookupTTL:         cfg.Payment.LookupTTL,
		CheckoutTimeout:   cfg.Payment.CheckoutTimeout,
		ValidationTimeout: cfg.Payment.ValidationTimeout,
	}
}
