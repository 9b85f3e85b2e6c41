package json

import "encoding/json"

// RawMessage is a raw encoded JSON value, shared by all implementations
type RawMessage = json.RawMessage
