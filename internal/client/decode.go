package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"studybuddy/types"

	"github.com/tidwall/gjson"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	// ErrInvalidResponse is returned when a response does not match the contract.
	ErrInvalidResponse = errors.New("invalid response")
)

// maxBody caps how much of a response is read.
const maxBody = 8 << 20

// APIError is a non-success envelope or HTTP status.
type APIError struct {
	Status int
	Code   int
	Msg    string
}

func (e *APIError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Msg)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	}
	return false
}

// decodeEnvelope reads {code, msg, data} and unmarshals data into out.
func decodeEnvelope(resp *http.Response, out any) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if !gjson.ValidBytes(body) {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{Status: resp.StatusCode, Msg: strings.TrimSpace(string(body))}
		}
		return fmt.Errorf("%w: body is not json", ErrInvalidResponse)
	}

	env := gjson.ParseBytes(body)
	code := env.Get("code")
	if resp.StatusCode >= http.StatusBadRequest || (code.Exists() && code.Int() != 0) {
		status := resp.StatusCode
		if status < http.StatusBadRequest {
			status = int(code.Int())
		}
		return &APIError{Status: status, Code: int(code.Int()), Msg: env.Get("msg").String()}
	}
	if out == nil {
		return nil
	}

	data := env.Get("data")
	if !data.Exists() || data.Type == gjson.Null {
		return fmt.Errorf("%w: missing data", ErrInvalidResponse)
	}
	if err := json.Unmarshal([]byte(data.Raw), out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// validateNote checks the fields every note must carry.
func validateNote(n *types.Note) error {
	switch {
	case n == nil:
		return fmt.Errorf("%w: empty note", ErrInvalidResponse)
	case n.ID == "":
		return fmt.Errorf("%w: note without id", ErrInvalidResponse)
	case n.UserEmail == "":
		return fmt.Errorf("%w: note %s without user_email", ErrInvalidResponse, n.ID)
	case n.Upvotes < 0:
		return fmt.Errorf("%w: note %s has negative upvotes", ErrInvalidResponse, n.ID)
	}
	return nil
}

func validateNotes(notes []*types.Note) error {
	for _, n := range notes {
		if err := validateNote(n); err != nil {
			return err
		}
	}
	return nil
}
