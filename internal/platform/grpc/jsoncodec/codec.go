// Package jsoncodec registers a JSON gRPC codec under the "json" content subtype.
//
// Services whose messages are plain Go structs select it per call with
// grpc.CallContentSubtype(jsoncodec.Name); the server resolves it from the
// request content-type automatically once this package is imported.
package jsoncodec

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// Name is the content subtype for the codec.
const Name = "json"

// Codec marshals gRPC messages as JSON.
type Codec struct{}

func init() {
	encoding.RegisterCodec(Codec{})
}

// Marshal encodes v as JSON.
func (Codec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json codec marshal %T: %w", v, err)
	}
	return data, nil
}

// Unmarshal decodes JSON data into v.
func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json codec unmarshal %T: %w", v, err)
	}
	return nil
}

// Name returns the registered content subtype.
func (Codec) Name() string {
	return Name
}
