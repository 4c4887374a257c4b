//go:build unit

package commands_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"localscout-booking/internal/domain/booking"
	"localscout-booking/internal/pkg/clock"
	"localscout-booking/internal/pkg/errs"
	"localscout-booking/internal/usecase/commands"
	"localscout-booking/internal/usecase/shared"
	"localscout-booking/tests/common/builder"
	"localscout-booking/tests/common/memstore"
	sharedmock "localscout-booking/tests/mock/shared"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type paymentFixture struct {
	store    *memstore.Store
	gateway  *sharedmock.MockPaymentGateway
	lookup   *sharedmock.MockCheckoutLookup
	events   *sharedmock.MockEventPublisher
	uc       commands.PaymentCommands
	bb       *builder.BookingBuilder
	customer *builder.UserBuilder
	provider *builder.UserBuilder
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	customer := builder.NewCustomerBuilder()
	provider := builder.NewProviderBuilder()
	bb := builder.NewBookingBuilder().WithParties(customer.ID, provider.ID)

	store := memstore.New()
	store.PutUser(customer.BuildProfile())
	store.PutUser(provider.BuildProfile())
	store.PutService(bb.BuildServiceSnapshot())

	f := &paymentFixture{
		store:    store,
		gateway:  sharedmock.NewMockPaymentGateway(ctrl),
		lookup:   sharedmock.NewMockCheckoutLookup(ctrl),
		events:   sharedmock.NewMockEventPublisher(ctrl),
		bb:       bb,
		customer: customer,
		provider: provider,
	}
	f.uc = commands.NewPaymentUseCase(store, f.gateway, f.lookup, f.events, clock.NewMockClock(testNow), commands.CheckoutSettings{
		Currency:          "BDT",
		SuccessURL:        "http://localhost:8080/payment/success",
		FailURL:           "http://localhost:8080/payment/fail",
		CancelURL:         "http://localhost:8080/payment/cancel",
		IPNURL:            "http://localhost:8080/payment/webhook",
		LookupTTL:         time.Hour,
		CheckoutTimeout:   time.Second,
		ValidationTimeout: time.Second,
	})
	return f
}

func (f *paymentFixture) seed(status booking.Status) uuid.UUID {
	b := f.bb.WithStatus(status).BuildReconstructed()
	f.store.PutBooking(b)
	return b.ID()
}

// =============================================================================
// CreateCheckoutSession Tests
// =============================================================================

func TestPaymentCommands_CreateCheckoutSession(t *testing.T) {
	ctx := context.Background()

	t.Run("success: final price is charged and booking is untouched", func(t *testing.T) {
		f := newPaymentFixture(t)
		id := f.seed(booking.StatusApproved)
		f.bb.WithFinalPrice(45000)
		f.store.PutBooking(f.bb.BuildReconstructed())

		var sent shared.CheckoutRequest
		f.lookup.EXPECT().Remember(gomock.Any(), gomock.Any(), id, time.Hour).Return(nil)
		f.gateway.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req shared.CheckoutRequest) (*shared.CheckoutSession, error) {
				sent = req
				return &shared.CheckoutSession{RedirectURL: "https://sandbox.example/pay/abc"}, nil
			})

		url, err := f.uc.CreateCheckoutSession(ctx, id, f.customer.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://sandbox.example/pay/abc", url)

		assert.Equal(t, "450.00", sent.Amount.String())
		assert.Equal(t, "BDT", sent.Currency)
		assert.Equal(t, "Home Deep Cleaning", sent.ProductName)
		assert.Equal(t, "rahim@example.com", sent.Customer.Email)
		assert.True(t, strings.HasPrefix(sent.TransactionID, "LS_"+strings.ReplaceAll(id.String(), "-", "")+"_"))
		assert.Equal(t, "http://localhost:8080/payment/webhook", sent.IPNURL)

		rec, _ := f.store.Booking(id)
		assert.Equal(t, booking.StatusApproved, rec.Status)
	})

	t.Run("success: lookup failure is tolerated", func(t *testing.T) {
		f := newPaymentFixture(t)
		id := f.seed(booking.StatusApproved)

		f.lookup.EXPECT().Remember(gomock.Any(), gomock.Any(), id, gomock.Any()).Return(errors.New("redis down"))
		f.gateway.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).
			Return(&shared.CheckoutSession{RedirectURL: "https://sandbox.example/pay/xyz"}, nil)

		url, err := f.uc.CreateCheckoutSession(ctx, id, f.customer.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, url)
	})

	t.Run("error: pending booking cannot be paid", func(t *testing.T) {
		f := newPaymentFixture(t)
		id := f.seed(booking.StatusPendingApproval)

		_, err := f.uc.CreateCheckoutSession(ctx, id, f.customer.ID)
		assert.True(t, errs.Is(err, errs.ErrInvalidStateTransition), "got %v", err)
	})

	t.Run("error: only the customer pays", func(t *testing.T) {
		f := newPaymentFixture(t)
		id := f.seed(booking.StatusApproved)

		_, err := f.uc.CreateCheckoutSession(ctx, id, f.provider.ID)
		assert.True(t, errs.Is(err, errs.ErrForbidden), "got %v", err)
	})

	t.Run("error: gateway failure", func(t *testing.T) {
		f := newPaymentFixture(t)
		id := f.seed(booking.StatusApproved)

		f.lookup.EXPECT().Remember(gomock.Any(), gomock.Any(), id, gomock.Any()).Return(nil)
		f.gateway.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("status FAILED"), shared.ErrGatewayRejected))

		_, err := f.uc.CreateCheckoutSession(ctx, id, f.customer.ID)
		assert.True(t, errs.Is(err, errs.ErrPaymentInitiationFailed), "got %v", err)
		rec, _ := f.store.Booking(id)
		assert.Equal(t, booking.StatusApproved, rec.Status)
	})
}

// =============================================================================
// HandlePaymentWebhook Tests
// =============================================================================

func validResult(tranID string) *shared.ValidationResult {
	return &shared.ValidationResult{
		Valid:         true,
		Status:        shared.PaymentStatusValid,
		TransactionID: tranID,
		Amount:        "500.00",
		Reference:     "BANK-7781",
	}
}

func TestPaymentCommands_HandlePaymentWebhook(t *testing.T) {
	ctx := context.Background()

	t.Run("success: confirms once and a duplicate delivery is a no-op", func(t *testing.T) {
		f := newPaymentFixture(t)
		id := f.seed(booking.StatusApproved)
		tranID := booking.NewTransactionID(id)
		payload := commands.WebhookPayload{TranID: tranID, ValID: "VAL-1", Status: "VALID"}

		f.lookup.EXPECT().Resolve(gomock.Any(), tranID).Return(id, true, nil).Times(2)
		f.gateway.EXPECT().ValidateTransaction(gomock.Any(), "VAL-1").Return(validResult(tranID), nil).Times(1)
		f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, evt shared.BookingEvent) error {
				assert.Equal(t, shared.EventBookingConfirmed, evt.Type)
				return nil
			}).Times(1)

		outcome, err := f.uc.HandlePaymentWebhook(ctx, payload)
		require.NoError(t, err)
		assert.Equal(t, commands.OutcomeConfirmed, outcome)

		rec, _ := f.store.Booking(id)
		assert.Equal(t, booking.StatusConfirmed, rec.Status)
		assert.Equal(t, "BANK-7781", rec.PaymentReference)
		assert.Len(t, f.store.UnreadFor(f.customer.ID), 1)
		assert.Len(t, f.store.UnreadFor(f.provider.ID), 1)

		outcome, err = f.uc.HandlePaymentWebhook(ctx, payload)
		require.NoError(t, err)
		assert.Equal(t, commands.OutcomeAlreadyConfirmed, outcome)
		assert.Len(t, f.store.NotificationsFor(f.customer.ID), 1)
		assert.Len(t, f.store.NotificationsFor(f.provider.ID), 1)
	})

	t.Run("success: expired lookup falls back to parsing the transaction id", func(t *testing.T) {
		f := newPaymentFixture(t)
		id := f.seed(booking.StatusApproved)
		tranID := booking.NewTransactionID(id)

		f.lookup.EXPECT().Resolve(gomock.Any(), tranID).Return(uuid.Nil, false, nil)
		f.gateway.EXPECT().ValidateTransaction(gomock.Any(), "VAL-2").Return(validResult(tranID), nil)
		f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		outcome, err := f.uc.HandlePaymentWebhook(ctx, commands.WebhookPayload{TranID: tranID, ValID: "VAL-2"})
		require.NoError(t, err)
		assert.Equal(t, commands.OutcomeConfirmed, outcome)
	})

	t.Run("success: concurrent delivery already confirmed", func(t *testing.T) {
		f := newPaymentFixture(t)
		id := f.seed(booking.StatusApproved)
		tranID := booking.NewTransactionID(id)
		f.store.BeforeUpdate = func(committed *booking.Record) {
			committed.Status = booking.StatusConfirmed
			committed.PaymentReference = "BANK-OTHER"
		}

		f.lookup.EXPECT().Resolve(gomock.Any(), tranID).Return(id, true, nil)
		f.gateway.EXPECT().ValidateTransaction(gomock.Any(), "VAL-3").Return(validResult(tranID), nil)

		outcome, err := f.uc.HandlePaymentWebhook(ctx, commands.WebhookPayload{TranID: tranID, ValID: "VAL-3"})
		require.NoError(t, err)
		assert.Equal(t, commands.OutcomeAlreadyConfirmed, outcome)

		rec, _ := f.store.Booking(id)
		assert.Equal(t, "BANK-OTHER", rec.PaymentReference)
		assert.Empty(t, f.store.NotificationsFor(f.customer.ID))
	})

	t.Run("not confirmed: gateway reports invalid", func(t *testing.T) {
		f := newPaymentFixture(t)
		id := f.seed(booking.StatusApproved)
		tranID := booking.NewTransactionID(id)

		f.lookup.EXPECT().Resolve(gomock.Any(), tranID).Return(id, true, nil)
		f.gateway.EXPECT().ValidateTransaction(gomock.Any(), "VAL-4").
			Return(&shared.ValidationResult{Valid: false, Status: "INVALID_TRANSACTION"}, nil)

		outcome, err := f.uc.HandlePaymentWebhook(ctx, commands.WebhookPayload{TranID: tranID, ValID: "VAL-4"})
		require.NoError(t, err)
		assert.Equal(t, commands.OutcomeNotConfirmed, outcome)
		rec, _ := f.store.Booking(id)
		assert.Equal(t, booking.StatusApproved, rec.Status)
	})

	t.Run("not confirmed: collected charge differs from the booking", func(t *testing.T) {
		cases := []struct {
			name     string
			amount   string
			currency string
		}{
			{name: "underpaid", amount: "1.00", currency: "BDT"},
			{name: "overpaid", amount: "500.01", currency: "BDT"},
			{name: "missing amount", amount: "", currency: "BDT"},
			{name: "garbled amount", amount: "five hundred", currency: "BDT"},
			{name: "other currency", amount: "500.00", currency: "USD"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				f := newPaymentFixture(t)
				id := f.seed(booking.StatusApproved)
				tranID := booking.NewTransactionID(id)

				result := validResult(tranID)
				result.Amount = tc.amount
				result.Currency = tc.currency
				f.lookup.EXPECT().Resolve(gomock.Any(), tranID).Return(id, true, nil)
				f.gateway.EXPECT().ValidateTransaction(gomock.Any(), "VAL-8").Return(result, nil)

				outcome, err := f.uc.HandlePaymentWebhook(ctx, commands.WebhookPayload{TranID: tranID, ValID: "VAL-8"})
				require.NoError(t, err)
				assert.Equal(t, commands.OutcomeNotConfirmed, outcome)
				rec, _ := f.store.Booking(id)
				assert.Equal(t, booking.StatusApproved, rec.Status)
				assert.Empty(t, rec.PaymentReference)
				assert.Empty(t, f.store.NotificationsFor(f.customer.ID))
			})
		}
	})

	t.Run("success: amount compared by value and currency case-insensitively", func(t *testing.T) {
		f := newPaymentFixture(t)
		id := f.seed(booking.StatusApproved)
		tranID := booking.NewTransactionID(id)

		result := validResult(tranID)
		result.Amount = "500"
		result.Currency = "bdt"
		f.lookup.EXPECT().Resolve(gomock.Any(), tranID).Return(id, true, nil)
		f.gateway.EXPECT().ValidateTransaction(gomock.Any(), "VAL-9").Return(result, nil)
		f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		outcome, err := f.uc.HandlePaymentWebhook(ctx, commands.WebhookPayload{TranID: tranID, ValID: "VAL-9"})
		require.NoError(t, err)
		assert.Equal(t, commands.OutcomeConfirmed, outcome)
	})

	t.Run("not confirmed: validation belongs to another transaction", func(t *testing.T) {
		f := newPaymentFixture(t)
		id := f.seed(booking.StatusApproved)
		tranID := booking.NewTransactionID(id)

		f.lookup.EXPECT().Resolve(gomock.Any(), tranID).Return(id, true, nil)
		f.gateway.EXPECT().ValidateTransaction(gomock.Any(), "VAL-5").
			Return(validResult(booking.NewTransactionID(uuid.New())), nil)

		outcome, err := f.uc.HandlePaymentWebhook(ctx, commands.WebhookPayload{TranID: tranID, ValID: "VAL-5"})
		require.NoError(t, err)
		assert.Equal(t, commands.OutcomeNotConfirmed, outcome)
	})

	t.Run("error: transient gateway failure leaves booking approved", func(t *testing.T) {
		f := newPaymentFixture(t)
		id := f.seed(booking.StatusApproved)
		tranID := booking.NewTransactionID(id)

		f.lookup.EXPECT().Resolve(gomock.Any(), tranID).Return(id, true, nil)
		f.gateway.EXPECT().ValidateTransaction(gomock.Any(), "VAL-6").
			Return(nil, errs.Mark(context.DeadlineExceeded, shared.ErrGatewayUnavailable))

		_, err := f.uc.HandlePaymentWebhook(ctx, commands.WebhookPayload{TranID: tranID, ValID: "VAL-6"})
		assert.True(t, errs.Is(err, errs.ErrTransientGateway), "got %v", err)
		rec, _ := f.store.Booking(id)
		assert.Equal(t, booking.StatusApproved, rec.Status)
	})

	t.Run("ignored: unknown booking", func(t *testing.T) {
		f := newPaymentFixture(t)
		tranID := booking.NewTransactionID(uuid.New())

		f.lookup.EXPECT().Resolve(gomock.Any(), tranID).Return(uuid.Nil, false, nil)

		outcome, err := f.uc.HandlePaymentWebhook(ctx, commands.WebhookPayload{TranID: tranID, ValID: "VAL-7"})
		require.NoError(t, err)
		assert.Equal(t, commands.OutcomeIgnored, outcome)
	})

	t.Run("ignored: canceled booking is never confirmed", func(t *testing.T) {
		f := newPaymentFixture(t)
		id := f.seed(booking.StatusCanceledByUser)
		tranID := booking.NewTransactionID(id)

		f.lookup.EXPECT().Resolve(gomock.Any(), tranID).Return(id, true, nil)

		outcome, err := f.uc.HandlePaymentWebhook(ctx, commands.WebhookPayload{TranID: tranID, ValID: "VAL-8"})
		require.NoError(t, err)
		assert.Equal(t, commands.OutcomeIgnored, outcome)
	})

	t.Run("error: malformed payload", func(t *testing.T) {
		f := newPaymentFixture(t)

		_, err := f.uc.HandlePaymentWebhook(ctx, commands.WebhookPayload{TranID: "", ValID: "VAL-9"})
		assert.True(t, errs.Is(err, errs.ErrValidation), "got %v", err)

		f.lookup.EXPECT().Resolve(gomock.Any(), "garbage").Return(uuid.Nil, false, nil)
		_, err = f.uc.HandlePaymentWebhook(ctx, commands.WebhookPayload{TranID: "garbage", ValID: "VAL-9"})
		assert.True(t, errs.Is(err, errs.ErrValidation), "got %v", err)
	})
}
