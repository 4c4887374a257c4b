package booking

import "localscout-booking/internal/pkg/errs"

var ErrUnknownStatus = errs.New("unknown booking status")

type Status string

const (
	StatusPendingApproval Status = "PendingApproval"
	StatusApproved        Status = "Approved"
	StatusRejected        Status = "Rejected"
	StatusConfirmed       Status = "Confirmed"
	StatusCompleted       Status = "Completed"
	StatusCanceledByUser  Status = "CanceledByUser"
)

// Forward-only edges. Statuses without an entry are terminal.
var transitions = map[Status][]Status{
	StatusPendingApproval: {StatusApproved, StatusRejected, StatusCanceledByUser},
	StatusApproved:        {StatusConfirmed, StatusCanceledByUser},
	StatusConfirmed:       {StatusCompleted},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingApproval, StatusApproved, StatusRejected,
		StatusConfirmed, StatusCompleted, StatusCanceledByUser:
		return true
	default:
		return false
	}
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

func AllStatuses() []Status {
	return []Status{
		StatusPendingApproval, StatusApproved, StatusRejected,
		StatusConfirmed, StatusCompleted, StatusCanceledByUser,
	}
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", errs.Mark(errs.Newf("booking status %q", s), ErrUnknownStatus)
	}
	return status, nil
}
