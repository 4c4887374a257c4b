package notification

import (
	"strings"
	"time"

	"localscout-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrRecipientRequired = errs.New("notification recipient is required")
	ErrMessageRequired   = errs.New("notification message is required")
	ErrNotRecipient      = errs.New("actor is not the notification recipient")
)

type Notification struct {
	id        uuid.UUID
	userID    uuid.UUID
	message   string
	isRead    bool
	createdAt time.Time
}

func New(userID uuid.UUID, message string, now time.Time) (*Notification, error) {
	if userID == uuid.Nil {
		return nil, ErrRecipientRequired
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrMessageRequired
	}
	return &Notification{
		id:        uuid.New(),
		userID:    userID,
		message:   message,
		createdAt: now,
	}, nil
}

func Reconstruct(id, userID uuid.UUID, message string, isRead bool, createdAt time.Time) *Notification {
	return &Notification{
		id:        id,
		userID:    userID,
		message:   message,
		isRead:    isRead,
		createdAt: createdAt,
	}
}

func (n *Notification) ID() uuid.UUID        { return n.id }
func (n *Notification) UserID() uuid.UUID    { return n.userID }
func (n *Notification) Message() string      { return n.message }
func (n *Notification) IsRead() bool         { return n.isRead }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }

// MarkRead reports whether the flag changed. Reading twice is a no-op.
func (n *Notification) MarkRead(actorID uuid.UUID) (bool, error) {
	if actorID != n.userID {
		return false, ErrNotRecipient
	}
	if n.isRead {
		return false, nil
	}
	n.isRead = true
	return true, nil
}
