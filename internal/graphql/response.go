package graphql

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bnema/portal-cli/internal/domain"
)

type Envelope struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []ErrorEntry                `json:"errors"`
}

type ErrorEntry struct {
	Message string `json:"message"`
}

// DecodeEnvelope classifies a raw reply: non-2xx becomes a
// *domain.TransportError, a non-empty errors array a
// *domain.ApplicationError.
func DecodeEnvelope(resp *domain.RawResponse) (Envelope, error) {
	if resp == nil {
		return Envelope{}, &domain.TransportError{Err: fmt.Errorf("empty response")}
	}
	if !resp.OK() {
		return Envelope{}, &domain.TransportError{StatusCode: resp.StatusCode}
	}

	var envelope Envelope
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return Envelope{}, fmt.Errorf("decode response envelope: %w", err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, entry := range envelope.Errors {
			messages = append(messages, entry.Message)
		}
		return Envelope{}, &domain.ApplicationError{Messages: messages}
	}

	return envelope, nil
}

// DecodeField decodes data[field] of the reply into out.
func DecodeField(resp *domain.RawResponse, field string, out any) error {
	envelope, err := DecodeEnvelope(resp)
	if err != nil {
		return err
	}

	raw, ok := envelope.Data[field]
	if !ok || len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return fmt.Errorf("response missing %s", field)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", field, err)
	}

	return nil
}
