package apiconnect

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// jsonCodec marshals plain Go message structs. Connect's built-in JSON codec
// only accepts protobuf messages, so handlers and clients of this package
// register this one under the same names.
type jsonCodec struct {
	name string
}

func (c jsonCodec) Name() string { return c.name }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// WithJSON registers the JSON codec on a handler. The handler constructors
// of this package apply it already.
func WithJSON() connect.HandlerOption {
	return connect.WithOptions(
		connect.WithCodec(jsonCodec{name: "json"}),
		connect.WithCodec(jsonCodec{name: "json; charset=utf-8"}),
	)
}

// WithJSONClient makes a client send JSON. The client constructors of this
// package apply it already.
func WithJSONClient() connect.ClientOption {
	return connect.WithCodec(jsonCodec{name: "json"})
}
