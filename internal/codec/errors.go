package codec

import "errors"

var (
	// ErrNoData is returned when there are no prior bytes to decode (first run).
	ErrNoData = errors.New("codec: no data")

	// ErrUndecodable is returned when no known schema accepts the payload.
	ErrUndecodable = errors.New("codec: no decodable schema")

	// ErrMissingField is returned by strict decoders when a required key is absent.
	ErrMissingField = errors.New("codec: required field missing")
)
