package commands

import (
	"context"

	"localscout-booking/internal/pkg/errs"
	"localscout-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type NotificationCommands interface {
	MarkRead(ctx context.Context, notificationID, actorID uuid.UUID) error
}

type notificationUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewNotificationUseCase(uow shared.UnitOfWork) NotificationCommands {
	return &notificationUseCaseImpl{uow: uow}
}

// MarkRead is a no-op when the notification is already read.
func (uc *notificationUseCaseImpl) MarkRead(ctx context.Context, notificationID, actorID uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Reads().NotificationByID(ctx, notificationID)
		if err != nil {
			return err
		}
		changed, err := n.MarkRead(actorID)
		if err != nil {
			return errs.Wrapf(err, "notification %s", notificationID)
		}
		if !changed {
			return nil
		}
		return tx.Notifications().MarkRead(ctx, tx.DB(), notificationID, actorID)
	})
	return classify(err)
}
