package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/trattoria-labs/restaurant-service/internal/auth"
	"github.com/trattoria-labs/restaurant-service/internal/events"
	apperrors "github.com/trattoria-labs/restaurant-service/pkg/util"
)

// parseID rejects ids that can never match a stored document.
func parseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", apperrors.NewBadRequest("Invalid id.")
	}
	return parsed.String(), nil
}

// notFoundOr maps a missing row to a 404 with message, and anything else to itself.
func notFoundOr(err error, message string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(message)
	}
	return err
}

func actorFrom(ctx context.Context) events.Actor {
	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		return events.Actor{}
	}
	return events.Actor{UserID: identity.UserID, Username: identity.Username}
}

func publish(ctx context.Context, dispatcher events.Dispatcher, eventType events.EventType, resourceID string, changed ...string) {
	if dispatcher == nil {
		return
	}
	// handler failures are logged by the dispatcher and never fail the request
	_ = dispatcher.Publish(ctx, events.New(eventType, resourceID, actorFrom(ctx), changed...))
}
