package auth

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Claims are the identity fields the API reads from a verified bearer token.
type Claims struct {
	EmployeeID string
	Role       string
}

func (c Claims) IsAdmin() bool {
	return c.Role == "admin"
}

const EventUserCreated = "user.created"

// DefaultFullName is used when the identity carries no first or last name.
const DefaultFullName = "New Employee"

// IdentityEvent is a Clerk webhook delivery. ID comes from the svix-id header.
type IdentityEvent struct {
	ID        string        `json:"-"`
	Type      string        `json:"type"`
	Object    string        `json:"object"`
	Timestamp int64         `json:"timestamp"`
	Data      *IdentityUser `json:"data"`
}

type IdentityUser struct {
	ID                    string         `json:"id"`
	FirstName             string         `json:"first_name"`
	LastName              string         `json:"last_name"`
	PrimaryEmailAddressID string         `json:"primary_email_address_id"`
	EmailAddresses        []EmailAddress `json:"email_addresses"`
	PublicMetadata        UserMetadata   `json:"public_metadata"`
}

type EmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

// UserMetadata holds the payroll fields an administrator may set on the identity.
type UserMetadata struct {
	Role       string           `json:"role,omitempty"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
}

// PrimaryEmail prefers the address marked primary, then the first one listed.
func (u IdentityUser) PrimaryEmail() string {
	for _, e := range u.EmailAddresses {
		if e.ID != "" && e.ID == u.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(u.EmailAddresses) > 0 {
		return u.EmailAddresses[0].EmailAddress
	}
	return ""
}

func (u IdentityUser) FullName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return DefaultFullName
	}
	return name
}

type IdentityEventResponse struct {
	EventID    string `json:"event_id"`
	Handled    bool   `json:"handled"`
	EmployeeID string `json:"employee_id,omitempty"`
}
