package types

import jsoniter "github.com/json-iterator/go"

// WireJSON encodes request bodies and signed payloads: compact output, sorted map
// keys and no HTML escaping, so redirect URLs reach the gateway untouched.
var WireJSON = jsoniter.Config{
	SortMapKeys:            true,
	EscapeHTML:             false,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()
