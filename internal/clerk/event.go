// Package clerk handles inbound Clerk webhook deliveries: signature
// verification under the Svix scheme, the event envelope model, replay
// protection, and the HTTP handler that turns verified events into user
// synchronization calls.
package clerk

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EventUserCreated is the only event type this service acts on. Every other
// type is acknowledged and ignored.
const EventUserCreated = "user.created"

// Event is the verified webhook envelope. Data is kept raw so that only the
// variant matching Type is ever decoded.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// EmailAddress is one entry of a Clerk email address list.
type EmailAddress struct {
	EmailAddress string `json:"email_address"`
}

// UserCreatedData is the payload of a user.created event. Only the fields
// this service consumes are declared.
type UserCreatedData struct {
	ID             string         `json:"id"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	ImageURL       string         `json:"image_url"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
}

// UserCreated decodes the envelope's payload as user.created data.
func (e Event) UserCreated() (UserCreatedData, error) {
	if e.Type != EventUserCreated {
		return UserCreatedData{}, fmt.Errorf("event type is %q, not %q", e.Type, EventUserCreated)
	}
	var data UserCreatedData
	if err := json.Unmarshal(e.Data, &data); err != nil {
		return UserCreatedData{}, fmt.Errorf("decode %s data: %w", EventUserCreated, err)
	}
	return data, nil
}

// PrimaryEmail returns the first reported email address, or the empty string
// when the provider sent none.
func (d UserCreatedData) PrimaryEmail() string {
	if len(d.EmailAddresses) == 0 {
		return ""
	}
	return d.EmailAddresses[0].EmailAddress
}

// FullName joins first and last name, tolerating either being empty.
func (d UserCreatedData) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}
