package httpapi

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
)

// UserHeader scopes a request to the calling user. Authentication happens
// upstream; the header carries the authenticated user's id.
type UserHeader struct {
	UserID string `header:"X-User-ID" required:"true" format:"uuid" doc:"UUID of the requesting user"`
}

func (h UserHeader) User() (uuid.UUID, error) {
	id, err := uuid.FromString(h.UserID)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, huma.NewError(http.StatusUnauthorized, "invalid X-User-ID header")
	}
	return id, nil
}

// ParseOptionalUUID parses s, returning nil for an empty string.
func ParseOptionalUUID(s, field string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.FromString(s)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return &id, nil
}

// ParseUUID parses a required path or body id.
func ParseUUID(s, field string) (uuid.UUID, error) {
	id, err := uuid.FromString(s)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return id, nil
}
