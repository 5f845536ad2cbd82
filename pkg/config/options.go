package config

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// ServerPathKey is the initialization option naming an explicit server
// binary.
const ServerPathKey = "serverPath"

// Options are the per-session settings sent by the editor with the
// initialize request.
type Options struct {
	// ServerPath is an explicit server command or path. Empty means unset.
	ServerPath string

	// Raw is the original options blob, passed through to the language
	// server untouched.
	Raw json.RawMessage
}

// ParseOptions extracts Options from the raw initialization options.
//
// A serverPath that is missing, null, or not a string is treated as unset.
// Malformed JSON is not an error here; it is still passed through as-is.
func ParseOptions(raw json.RawMessage) Options {
	opts := Options{Raw: raw}

	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return opts
	}

	res := gjson.GetBytes(raw, ServerPathKey)
	if res.Type == gjson.String {
		opts.ServerPath = res.Str
	}

	return opts
}

// HasServerPath reports whether an explicit, non-empty server path was given.
func (opts Options) HasServerPath() bool {
	return opts.ServerPath != ""
}
