package usecase

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/domain"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// pageCursor is the opaque keyset cursor shared by every listing:
// (created_at, id) of the last row on the previous page.
type pageCursor struct {
	CreatedAt time.Time `json:"c"`
	ID        string    `json:"i"`
}

func decodeCursor(s string) (*time.Time, string, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrBadCursor, err)
	}
	var c pageCursor
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrBadCursor, err)
	}
	return &c.CreatedAt, c.ID, nil
}

func encodeCursor(createdAt time.Time, id string) string {
	b, _ := json.Marshal(pageCursor{CreatedAt: createdAt, ID: id})
	return base64.RawURLEncoding.EncodeToString(b)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}
