package release_test

import (
	"errors"
	"testing"

	"github.com/vito/is"
	"github.com/vito/rust-analyzer-plugin/pkg/release"
)

func TestDetectTarget(t *testing.T) {
	for _, example := range []struct {
		Arch, OS string

		Triple  string
		Archive string
		Binary  string
		Format  release.Format
	}{
		{
			Arch: "x86_64", OS: "linux",
			Triple:  "x86_64-unknown-linux-gnu",
			Archive: "rust-analyzer-x86_64-unknown-linux-gnu.gz",
			Binary:  "rust-analyzer-x86_64-unknown-linux-gnu",
			Format:  release.FormatGzip,
		},
		{
			Arch: "arm64", OS: "linux",
			Triple:  "aarch64-unknown-linux-gnu",
			Archive: "rust-analyzer-aarch64-unknown-linux-gnu.gz",
			Binary:  "rust-analyzer-aarch64-unknown-linux-gnu",
			Format:  release.FormatGzip,
		},
		{
			Arch: "aarch64", OS: "macos",
			Triple:  "aarch64-apple-darwin",
			Archive: "rust-analyzer-aarch64-apple-darwin.gz",
			Binary:  "rust-analyzer-aarch64-apple-darwin",
			Format:  release.FormatGzip,
		},
		{
			Arch: "amd64", OS: "darwin",
			Triple:  "x86_64-apple-darwin",
			Archive: "rust-analyzer-x86_64-apple-darwin.gz",
			Binary:  "rust-analyzer-x86_64-apple-darwin",
			Format:  release.FormatGzip,
		},
		{
			Arch: "x86_64", OS: "windows",
			Triple:  "x86_64-pc-windows-msvc",
			Archive: "rust-analyzer-x86_64-pc-windows-msvc.zip",
			Binary:  "rust-analyzer-x86_64-pc-windows-msvc.exe",
			Format:  release.FormatZip,
		},
	} {
		example := example
		t.Run(example.Arch+"/"+example.OS, func(t *testing.T) {
			is := is.New(t)

			target, err := release.DetectTarget(example.Arch, example.OS)
			is.NoErr(err)
			is.Equal(target.Triple(), example.Triple)
			is.Equal(target.ArchiveName(), example.Archive)
			is.Equal(target.BinaryName(), example.Binary)
			is.Equal(target.Format(), example.Format)
		})
	}
}

func TestDetectTargetUnsupported(t *testing.T) {
	for _, example := range [][2]string{
		{"riscv64", "linux"},
		{"x86_64", "freebsd"},
		{"", ""},
	} {
		is := is.New(t)

		_, err := release.DetectTarget(example[0], example[1])
		is.True(errors.Is(err, release.ErrUnsupportedPlatform))
	}
}

func TestDefaultServerName(t *testing.T) {
	is := is.New(t)

	is.Equal(release.DefaultServerName("linux"), "rust-analyzer")
	is.Equal(release.DefaultServerName("macos"), "rust-analyzer")
	is.Equal(release.DefaultServerName("windows"), "rust-analyzer.exe")
}
