// Package leads captures early-access sign-ups: validation, per-client rate
// limiting, persistence in bbolt and forwarding to a webhook.
package leads

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Input is an early-access form submission as received. Fields that were not
// JSON strings are left empty.
type Input struct {
	Email   string
	Name    string
	Company string
	Role    string
	Comment string
}

// Lead is a validated, sanitized submission.
type Lead struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name,omitempty"`
	Company     string    `json:"company,omitempty"`
	Role        string    `json:"role,omitempty"`
	Comment     string    `json:"comment,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Sanitize trims every field and lowercases the email. Role is kept as sent
// since it was matched exactly during validation.
func (in Input) Sanitize() Input {
	return Input{
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Name:    strings.TrimSpace(in.Name),
		Company: strings.TrimSpace(in.Company),
		Role:    in.Role,
		Comment: strings.TrimSpace(in.Comment),
	}
}

// Submission is a parsed request body.
type Submission struct {
	Input Input
	// Honeypot is set when the hidden "website" field was present.
	Honeypot bool
}

var (
	ErrMalformedBody = errors.New("leads: malformed request body")
	ErrNotAnObject   = errors.New("leads: request body is not a JSON object")
)

// ParseSubmission decodes a JSON request body. Invalid JSON yields
// ErrMalformedBody; valid JSON that is not an object yields ErrNotAnObject.
func ParseSubmission(raw []byte) (Submission, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return Submission{}, ErrMalformedBody
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return Submission{}, ErrNotAnObject
	}

	_, honeypot := obj["website"]
	return Submission{
		Honeypot: honeypot,
		Input: Input{
			Email:   stringField(obj, "email"),
			Name:    stringField(obj, "name"),
			Company: stringField(obj, "company"),
			Role:    stringField(obj, "role"),
			Comment: stringField(obj, "comment"),
		},
	}, nil
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}
