package serve

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"pdsite/internal/consent"
	"pdsite/internal/leads"
	"strconv"
	"strings"
)

const maxBodyBytes = 64 << 10

type apiMessage struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readBody(r *http.Request, w http.ResponseWriter) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

// handleEarlyAccess takes the early-access form. The rate limit is applied
// before the body is read, and honeypot hits are answered as if accepted.
func (s *Server) handleEarlyAccess(w http.ResponseWriter, r *http.Request) {
	if ok, retry := s.limiter.Allow(leads.ClientKey(r)); !ok {
		secs := int(math.Ceil(retry.Seconds()))
		if secs < 1 {
			secs = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(secs))
		writeJSON(w, http.StatusTooManyRequests, apiMessage{Message: "Too many requests. Please try again later."})
		return
	}

	raw, err := readBody(r, w)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiMessage{Message: "Invalid request body"})
		return
	}

	sub, err := leads.ParseSubmission(raw)
	switch {
	case errors.Is(err, leads.ErrMalformedBody):
		writeJSON(w, http.StatusBadRequest, apiMessage{Message: "Invalid request body"})
		return
	case errors.Is(err, leads.ErrNotAnObject):
		writeJSON(w, http.StatusBadRequest, apiMessage{Message: "Validation failed", Errors: []string{"Invalid request body"}})
		return
	case err != nil:
		s.internalError(w, "parse early access body", err)
		return
	}

	if sub.Honeypot {
		s.log.Info("honeypot triggered", "client", leads.ClientKey(r))
		writeJSON(w, http.StatusOK, apiMessage{Message: "Success"})
		return
	}

	if err := sub.Input.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, apiMessage{Message: "Validation failed", Errors: leads.Messages(err)})
		return
	}

	if _, err := s.leads.Submit(r.Context(), sub.Input); err != nil {
		s.internalError(w, "submit lead", err)
		return
	}
	writeJSON(w, http.StatusOK, apiMessage{Message: "Success"})
}

type consentRequest struct {
	Choice string `json:"choice"`
}

// handleConsent stores the visitor's analytics choice in the consent cookie.
func (s *Server) handleConsent(w http.ResponseWriter, r *http.Request) {
	raw, err := readBody(r, w)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiMessage{Message: "Invalid request body"})
		return
	}
	var req consentRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiMessage{Message: "Invalid request body"})
		return
	}
	choice, err := consent.ParseChoice(strings.TrimSpace(req.Choice))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiMessage{Message: "Validation failed", Errors: []string{"Invalid consent choice"}})
		return
	}

	c, err := consent.NewCookie(choice, s.now())
	if err != nil {
		s.internalError(w, "build consent cookie", err)
		return
	}
	http.SetCookie(w, c)
	writeJSON(w, http.StatusOK, apiMessage{Message: "Success"})
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.log.Error("request failed", "op", op, "err", err)
	writeJSON(w, http.StatusInternalServerError, apiMessage{Message: "An error occurred"})
}
