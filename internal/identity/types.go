// Package identity talks to the remote identity service that validates
// sign-in credentials.
package identity

import (
	"encoding/json"
	"strings"
)

// RoleCustomer is the only role this front-end signs in as.
const RoleCustomer = "CUSTOMER"

// Credentials is the body of a login request. It is built per submission
// and never stored.
type Credentials struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	Role       string `json:"role"`
}

func NewCredentials(identifier, password string) Credentials {
	return Credentials{
		Identifier: identifier,
		Password:   password,
		Role:       RoleCustomer,
	}
}

// Response is the successful login payload. Its shape belongs to the
// identity service, so it is kept as raw JSON.
type Response struct {
	Body json.RawMessage
}

var tokenFields = []string{"token", "accessToken", "access_token"}

// Token returns the first session token field found in the body, if any.
func (r Response) Token() string {
	if len(r.Body) == 0 {
		return ""
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(r.Body, &fields); err != nil {
		return ""
	}
	for _, name := range tokenFields {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		var token string
		if err := json.Unmarshal(raw, &token); err == nil && strings.TrimSpace(token) != "" {
			return token
		}
	}
	return ""
}
