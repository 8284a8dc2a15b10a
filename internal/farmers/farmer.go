// Package farmers implements the farmer domain: the plantation owners that
// surveys are registered under.
package farmers

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Farmer is a registered plantation owner.
type Farmer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommand carries the fields required to register a farmer.
// Phone is optional but unique when present.
type CreateCommand struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
}

func (c *CreateCommand) normalize() error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrInvalidFarmer
	}

	if c.Phone != nil {
		p := strings.TrimSpace(*c.Phone)
		if p == "" {
			c.Phone = nil
		} else {
			c.Phone = &p
		}
	}
	return nil
}
