package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
)

// Environment variables set by the host for each plugin process.
const (
	ArchEnv = "VOLT_ARCH"
	OSEnv   = "VOLT_OS"
	URIEnv  = "VOLT_URI"
)

// Environment describes the machine the language server will run on, as
// reported by the host.
type Environment struct {
	Arch string
	OS   string

	// InstallURI is a file URI of the plugin's own directory.
	InstallURI string
}

// EnvironmentFromOS reads the host-supplied environment, falling back to the
// platform this process was built for.
func EnvironmentFromOS() Environment {
	env := Environment{
		Arch:       os.Getenv(ArchEnv),
		OS:         os.Getenv(OSEnv),
		InstallURI: os.Getenv(URIEnv),
	}

	if env.Arch == "" {
		env.Arch = runtime.GOARCH
	}

	if env.OS == "" {
		env.OS = runtime.GOOS
	}

	return env
}

// InstallDir converts InstallURI into a local directory path. It returns
// false if no URI was supplied.
func (env Environment) InstallDir() (string, bool, error) {
	if env.InstallURI == "" {
		return "", false, nil
	}

	u, err := url.Parse(env.InstallURI)
	if err != nil {
		return "", false, fmt.Errorf("parse %s: %w", URIEnv, err)
	}

	switch u.Scheme {
	case "file":
		return fromFileURL(u), true, nil
	case "":
		// bare path
		return filepath.FromSlash(u.Path), true, nil
	default:
		return "", false, fmt.Errorf("%s: unsupported scheme %q", URIEnv, u.Scheme)
	}
}

func fromFileURL(u *url.URL) string {
	path := u.Path
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		// file:///C:/foo
		path = path[1:]
	}

	return filepath.FromSlash(path)
}
