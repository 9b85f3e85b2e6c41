//go:build !sonic

package json

import "encoding/json"

// Implementation is a constant string that represents the current JSON implementation package
const Implementation = "encoding/json"

// Assign stdlib JSON functions to variables so that they can be swapped for
// faster implementations through build tags
var (
	Marshal       = json.Marshal
	Unmarshal     = json.Unmarshal
	MarshalIndent = json.MarshalIndent
	Valid         = json.Valid
)
