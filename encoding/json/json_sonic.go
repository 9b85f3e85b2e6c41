//go:build sonic

package json

import "github.com/bytedance/sonic"

// Implementation is a constant string that represents the current JSON implementation package
const Implementation = "bytedance/sonic"

// ConfigStd sorts map keys so payloads stay byte compatible with encoding/json
var (
	Marshal       = sonic.ConfigStd.Marshal
	Unmarshal     = sonic.ConfigStd.Unmarshal
	MarshalIndent = sonic.ConfigStd.MarshalIndent
	Valid         = sonic.ConfigStd.Valid
)
