package types

import jsoniter "github.com/json-iterator/go"

// JSON is the codec used for every payload that crosses a boundary.
// The compatible config sorts map keys, so identical responses marshal
// to identical bytes (callers diff and cache these strings).
var JSON = jsoniter.ConfigCompatibleWithStandardLibrary

// Encode marshals r to its wire form. A response is always
// marshalable; if the codec ever refuses, fall back to a minimal reply
// so no caller receives malformed JSON.
func (r Response) Encode() string {
	b, err := JSON.Marshal(r)
	if err != nil {
		return `{"action":"reply","message":"internal encoding error","data":{}}`
	}
	return string(b)
}

// Encode marshals the info snapshot for the legacy model-info call.
func (i ModelInfo) Encode() string {
	b, err := JSON.Marshal(i)
	if err != nil {
		return ""
	}
	return string(b)
}
