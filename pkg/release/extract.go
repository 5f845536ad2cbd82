package release

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
)

// zipEntrySuffix identifies the executable inside a Windows release zip.
const zipEntrySuffix = ServerName + ".exe"

// Extract writes the server executable contained in archive to dest.
//
// The file is written next to dest and renamed into place, so dest is never
// observed half-written.
func Extract(format Format, archive string, dest string) error {
	tmp := dest + ".tmp"

	var err error
	switch format {
	case FormatGzip:
		err = extractGzip(archive, tmp)
	case FormatZip:
		err = extractZip(archive, tmp)
	default:
		err = fmt.Errorf("unknown archive format: %s", format)
	}

	if err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("install executable: %w", err)
	}

	return nil
}

func extractGzip(archive, dest string) error {
	file, err := os.Open(archive)
	if err != nil {
		return err
	}

	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("open gzip: %w", err)
	}

	defer gz.Close()

	return writeExecutable(dest, gz)
}

func extractZip(archive, dest string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}

	defer zr.Close()

	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() || !strings.HasSuffix(entry.Name, zipEntrySuffix) {
			continue
		}

		rc, err := entry.Open()
		if err != nil {
			return fmt.Errorf("open %s: %w", entry.Name, err)
		}

		err = writeExecutable(dest, rc)
		rc.Close()
		return err
	}

	return ErrEntryNotFound
}

func writeExecutable(dest string, r io.Reader) error {
	file, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0755)
	if err != nil {
		return err
	}

	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		return fmt.Errorf("decompress: %w", err)
	}

	return file.Close()
}
