package commands

import (
	"localscout-booking/internal/domain/booking"
	"localscout-booking/internal/domain/notification"
	"localscout-booking/internal/infra"
	"localscout-booking/internal/pkg/errs"
	"localscout-booking/internal/pkg/tz"
)

var taxonomy = []error{
	errs.ErrNotFound,
	errs.ErrForbidden,
	errs.ErrValidation,
	errs.ErrInvalidStateTransition,
	errs.ErrPaymentInitiationFailed,
	errs.ErrTransientGateway,
	errs.ErrDatabaseOperationFailed,
}

var forbiddenErrs = []error{
	booking.ErrNotBookingProvider,
	booking.ErrNotBookingCustomer,
	notification.ErrNotRecipient,
}

var validationErrs = []error{
	booking.ErrServiceRequired,
	booking.ErrServiceNameRequired,
	booking.ErrCustomerRequired,
	booking.ErrProviderRequired,
	booking.ErrBookingDateRequired,
	booking.ErrSelfBooking,
	booking.ErrFinalPriceNotPositive,
	booking.ErrPaymentReferenceRequired,
	booking.ErrNegativeAmount,
	booking.ErrInvalidAmount,
	booking.ErrNoteTooLong,
	booking.ErrReasonTooLong,
	booking.ErrMalformedTransactionID,
	notification.ErrRecipientRequired,
	notification.ErrMessageRequired,
	tz.ErrInvalidLocalTime,
}

// classify marks err with exactly one taxonomy sentinel so handlers can map it.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range taxonomy {
		if errs.Is(err, target) {
			return err
		}
	}

	switch {
	case anyIs(err, forbiddenErrs):
		return errs.Mark(err, errs.ErrForbidden)
	case anyIs(err, validationErrs):
		return errs.Mark(err, errs.ErrValidation)
	case errs.Is(err, booking.ErrInvalidTransition), infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, errs.ErrInvalidStateTransition)
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrNotFound)
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}

func anyIs(err error, targets []error) bool {
	for _, t := range targets {
		if errs.Is(err, t) {
			return true
		}
	}
	return false
}

func validationf(format string, args ...any) error {
	return errs.Mark(errs.Newf(format, args...), errs.ErrValidation)
}
