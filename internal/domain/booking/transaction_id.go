package booking

import (
	"strings"

	"localscout-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	TransactionPrefix    = "LS"
	transactionSeparator = "_"
	suffixLength         = 8
)

var ErrMalformedTransactionID = errs.New("malformed transaction id")

// NewTransactionID builds LS_<booking id as 32 hex>_<random suffix>.
// The booking id component never contains the separator.
func NewTransactionID(bookingID uuid.UUID) string {
	suffix := compactUUID(uuid.New())[:suffixLength]
	return TransactionPrefix + transactionSeparator + compactUUID(bookingID) + transactionSeparator + suffix
}

func ParseTransactionID(tranID string) (uuid.UUID, error) {
	parts := strings.Split(strings.TrimSpace(tranID), transactionSeparator)
	if len(parts) != 3 || parts[0] != TransactionPrefix || len(parts[1]) != 32 || parts[2] == "" {
		return uuid.Nil, errs.Mark(errs.Newf("transaction id %q", tranID), ErrMalformedTransactionID)
	}

	id, err := uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, errs.Mark(errs.Wrapf(err, "transaction id %q", tranID), ErrMalformedTransactionID)
	}
	return id, nil
}

func compactUUID(id uuid.UUID) string {
	return strings.ReplaceAll(id.String(), "-", "")
}
