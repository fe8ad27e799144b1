package web

import (
	"net/http"

	"storehub/internal/middleware"

	"github.com/google/uuid"
)

func callerID(r *http.Request) (uuid.UUID, bool) {
	userIDStr, ok := middleware.GetUserID(r.Context())
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

func parseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}
