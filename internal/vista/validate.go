package vista

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// supportedImageTypes maps each MIME type the media library accepts to its
// file extensions.
var supportedImageTypes = map[string][]string{
	"image/jpeg":    {".jpg", ".jpeg"},
	"image/png":     {".png"},
	"image/gif":     {".gif"},
	"image/webp":    {".webp"},
	"image/bmp":     {".bmp"},
	"image/tiff":    {".tiff", ".tif"},
	"image/svg+xml": {".svg"},
}

// extensionMIME is the inverse of supportedImageTypes, used to guess a
// file's MIME type from its name. The platform mime registry is deliberately
// not consulted: it disagrees across systems (.bmp maps to image/x-ms-bmp on
// some, and .tiff is absent from Go's builtin table), and the accept table
// above is the upload contract either way.
var extensionMIME = func() map[string]string {
	m := make(map[string]string)

	for mtype, exts := range supportedImageTypes {
		for _, ext := range exts {
			m[ext] = mtype
		}
	}

	return m
}()

// defaultMIMEType is sent when a file's type cannot be guessed.
const defaultMIMEType = "application/octet-stream"

// SupportedExtensions returns every accepted file extension, sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionMIME))
	for ext := range extensionMIME {
		exts = append(exts, ext)
	}

	sort.Strings(exts)

	return exts
}

// guessMIMEType guesses the MIME type for a filename from its extension.
// Returns "" for unknown extensions.
func guessMIMEType(name string) string {
	return extensionMIME[strings.ToLower(filepath.Ext(name))]
}

// validateFileType checks both upload gates: the extension must be in the
// accept table, and the guessed MIME type must be too. Extension matching
// is case-insensitive.
func validateFileType(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := extensionMIME[ext]; !ok {
		return fmt.Errorf("%w: extension %q", ErrUnsupportedType, ext)
	}

	mtype := guessMIMEType(path)
	if _, ok := supportedImageTypes[mtype]; !ok {
		return fmt.Errorf("%w: mime type %q", ErrUnsupportedType, mtype)
	}

	return nil
}

// validateFile checks the upload preconditions: path names an existing
// regular file of a supported type. Returns the file info so callers can
// reuse the size.
func validateFile(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	if err != nil {
		return nil, fmt.Errorf("vista: stat %s: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrFileNotFound, path)
	}

	if err := validateFileType(path); err != nil {
		return nil, err
	}

	return info, nil
}
