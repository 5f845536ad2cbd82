package release

import (
	"fmt"
	"strings"
)

// ServerName is the base name of the language server executable.
const ServerName = "rust-analyzer"

// Format is the compression format of a release archive.
type Format int

const (
	FormatGzip Format = iota
	FormatZip
)

func (format Format) String() string {
	switch format {
	case FormatGzip:
		return "gz"
	case FormatZip:
		return "zip"
	default:
		return fmt.Sprintf("Format(%d)", int(format))
	}
}

// Target is a normalized architecture and operating system pair.
type Target struct {
	// Arch is x86_64 or aarch64.
	Arch string

	// OS is linux, macos, or windows.
	OS string
}

// DetectTarget normalizes arch and os as reported by either the host
// (x86_64, macos) or the Go runtime (amd64, darwin).
func DetectTarget(arch, os string) (Target, error) {
	var target Target

	switch strings.ToLower(arch) {
	case "x86_64", "amd64":
		target.Arch = "x86_64"
	case "aarch64", "arm64":
		target.Arch = "aarch64"
	default:
		return Target{}, fmt.Errorf("%w: arch %q", ErrUnsupportedPlatform, arch)
	}

	switch strings.ToLower(os) {
	case "linux":
		target.OS = "linux"
	case "macos", "darwin":
		target.OS = "macos"
	case "windows":
		target.OS = "windows"
	default:
		return Target{}, fmt.Errorf("%w: os %q", ErrUnsupportedPlatform, os)
	}

	return target, nil
}

func (target Target) String() string {
	return target.Triple()
}

// Triple returns the Rust target triple used in release asset names.
func (target Target) Triple() string {
	switch target.OS {
	case "macos":
		return target.Arch + "-apple-darwin"
	case "windows":
		return target.Arch + "-pc-windows-msvc"
	default:
		return target.Arch + "-unknown-linux-gnu"
	}
}

func (target Target) IsWindows() bool {
	return target.OS == "windows"
}

// Format returns how the target's release archive is compressed.
func (target Target) Format() Format {
	if target.IsWindows() {
		return FormatZip
	}

	return FormatGzip
}

// ArchiveName is the release asset name, e.g.
// rust-analyzer-x86_64-unknown-linux-gnu.gz.
func (target Target) ArchiveName() string {
	return ServerName + "-" + target.Triple() + "." + target.Format().String()
}

// BinaryName is the file name of the extracted server, e.g.
// rust-analyzer-x86_64-unknown-linux-gnu.
func (target Target) BinaryName() string {
	name := ServerName + "-" + target.Triple()
	if target.IsWindows() {
		name += ".exe"
	}

	return name
}

// DefaultServerName is the command looked up on the search path for os.
func DefaultServerName(os string) string {
	switch strings.ToLower(os) {
	case "windows":
		return ServerName + ".exe"
	default:
		return ServerName
	}
}
