package resolve

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// Server is a resolved reference to a language server executable.
type Server struct {
	// URI is urn:<command> for a command run from the search path (or given
	// explicitly), or a file URI for a downloaded executable.
	URI *url.URL

	// Command is what was probed or installed.
	Command string

	// Source names the strategy that found the server.
	Source string
}

// CommandServer references a command run by name or path.
func CommandServer(command, source string) (Server, error) {
	if _, err := url.Parse(fmt.Sprintf("urn:%s", command)); err != nil {
		return Server{}, fmt.Errorf("server url for %q: %w", command, err)
	}

	return Server{
		// opaque keeps the command verbatim in String()
		URI:     &url.URL{Scheme: "urn", Opaque: command},
		Command: command,
		Source:  source,
	}, nil
}

// FileServer references an executable on the local filesystem.
func FileServer(path, source string) (Server, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Server{}, fmt.Errorf("absolute path for %q: %w", path, err)
	}

	slashed := filepath.ToSlash(abs)
	if len(slashed) >= 2 && slashed[1] == ':' {
		// C:/foo -> /C:/foo
		slashed = "/" + slashed
	}

	return Server{
		URI:     &url.URL{Scheme: "file", Path: slashed},
		Command: abs,
		Source:  source,
	}, nil
}

func (server Server) String() string {
	if server.URI == nil {
		return server.Command
	}

	return server.URI.String()
}
