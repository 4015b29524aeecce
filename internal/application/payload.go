package application

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/oksasatya/vendor-vault/pkg/apperror"
	"github.com/oksasatya/vendor-vault/pkg/validation"
)

// Payload is a request body that has not been decoded yet. Operations decode
// it only after authorization, so a malformed body never outranks Forbidden.
type Payload interface {
	Decode(dst any) error
}

type jsonPayload struct {
	r io.Reader
}

// JSONPayload wraps a request body. Unknown fields are rejected.
func JSONPayload(r io.Reader) Payload {
	return jsonPayload{r: r}
}

func (p jsonPayload) Decode(dst any) error {
	if p.r == nil {
		return apperror.Invalid("invalid payload", map[string]string{"payload": "is required"})
	}
	dec := json.NewDecoder(p.r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperror.Invalid("invalid payload", validation.ToDetails(err))
	}
	if dec.More() {
		return apperror.Invalid("invalid payload", map[string]string{"payload": "must contain a single JSON object"})
	}
	return nil
}

// ValuePayload encodes v as JSON and serves it through the same strict
// decoder, for callers that already hold a value.
func ValuePayload(v any) Payload {
	b, err := json.Marshal(v)
	if err != nil {
		return errPayload{err: err}
	}
	return jsonPayload{r: bytes.NewReader(b)}
}

type errPayload struct{ err error }

func (p errPayload) Decode(any) error {
	return apperror.Invalid("invalid payload", validation.ToDetails(p.err))
}
