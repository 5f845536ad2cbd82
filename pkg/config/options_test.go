package config_test

import (
	"encoding/json"
	"testing"

	"github.com/vito/is"
	"github.com/vito/rust-analyzer-plugin/pkg/config"
)

func TestParseOptions(t *testing.T) {
	for _, example := range []struct {
		Name       string
		Raw        string
		ServerPath string
	}{
		{"absent options", "", ""},
		{"null options", "null", ""},
		{"no serverPath", `{"cargo":{"features":"all"}}`, ""},
		{"empty serverPath", `{"serverPath":""}`, ""},
		{"null serverPath", `{"serverPath":null}`, ""},
		{"non-string serverPath", `{"serverPath":42}`, ""},
		{"malformed", `{"serverPath":`, ""},
		{"explicit", `{"serverPath":"/opt/ra/bin/rust-analyzer"}`, "/opt/ra/bin/rust-analyzer"},
		{"verbatim", `{"serverPath":"  ra with spaces "}`, "  ra with spaces "},
	} {
		example := example
		t.Run(example.Name, func(t *testing.T) {
			is := is.New(t)

			opts := config.ParseOptions(json.RawMessage(example.Raw))
			is.Equal(opts.ServerPath, example.ServerPath)
			is.Equal(opts.HasServerPath(), example.ServerPath != "")
			is.Equal(string(opts.Raw), example.Raw)
		})
	}
}
