package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Decoded is the result of a successful decode.
type Decoded[T any] struct {
	Items []T
	// Schema is the version that accepted the payload.
	Schema int
	// Legacy is true when Schema is older than the current one and the caller
	// should write the upgraded record back.
	Legacy bool
}

// schema is one entry of a fallback chain: a version and a decoder
// that returns the payload already upgraded to the current type.
type schema[T any] struct {
	version int
	decode  func(data []byte) ([]T, error)
}

// SchemaError records why a candidate schema rejected the payload.
type SchemaError struct {
	Version int
	Err     error
}

// Error implements the error interface for SchemaError.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema %d: %v", e.Version, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// runChain tries every schema in order and returns the first success.
// Each attempt is independent; a failure only moves on to the next schema.
func runChain[T any](data []byte, chain []schema[T], current int) (Decoded[T], error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Decoded[T]{}, ErrNoData
	}

	var errs []error
	for _, s := range chain {
		items, err := s.decode(data)
		if err != nil {
			errs = append(errs, &SchemaError{Version: s.version, Err: err})
			continue
		}
		return Decoded[T]{
			Items:  items,
			Schema: s.version,
			Legacy: s.version != current,
		}, nil
	}

	return Decoded[T]{}, fmt.Errorf("%w: %w", ErrUndecodable, errors.Join(errs...))
}

// strictUnmarshal decodes JSON rejecting unknown fields and trailing data.
// Only the current envelopes are decoded strictly.
func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected trailing data")
	}
	return nil
}

// requireKeys checks that every object in a JSON array carries the given keys.
// encoding/json leaves absent keys at their zero value, so presence has to be
// checked separately to tell one schema from another.
func requireKeys(data []byte, keys ...string) error {
	var objs []map[string]json.RawMessage
	if err := json.Unmarshal(data, &objs); err != nil {
		return err
	}
	for i, obj := range objs {
		for _, k := range keys {
			if _, ok := obj[k]; !ok {
				return fmt.Errorf("%w: %q in element %d", ErrMissingField, k, i)
			}
		}
	}
	return nil
}
