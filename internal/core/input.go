package core

// input.go reads raw catalog text from files and stdin. Catalog exports come
// out of spreadsheets on Windows machines, so reading strips the UTF-8 BOM,
// caps the size, and rejects byte sequences that are not UTF-8 before any
// parsing happens.

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// DefaultMaxInputBytes caps catalog reads. Pasted tables run to kilobytes;
// anything near the cap is a mispicked file.
const DefaultMaxInputBytes = 20 << 20 // 20 MiB

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadInput reads catalog text from r, enforcing limit (DefaultMaxInputBytes
// when limit <= 0). The text comes back BOM-free and guaranteed UTF-8.
func ReadInput(r io.Reader, limit int64) (string, error) {
	if limit <= 0 {
		limit = DefaultMaxInputBytes
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("file too large: input exceeds %d bytes", limit)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", fmt.Errorf("invalid utf-8 byte sequence in input")
	}
	return string(data), nil
}

// ReadInputFile reads one catalog file with the default size cap. The
// os.Open error passes through untouched so a missing path reads naturally.
func ReadInputFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return ReadInput(f, DefaultMaxInputBytes)
}
