// Package cas is a content-addressable cache of rendered Markdown, keyed by
// a hash of the export bytes and the render options that produced it.
// Entries are zstd-compressed files sharded by key prefix.
package cas

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"xmldocmd/internal/config"
)

// Dir returns the CAS directory path.
func Dir() string {
	return config.CASDir()
}

// path returns the sharded file path for a key: cas/<first2>/<rest>.md.zst
func path(key string) string {
	return filepath.Join(Dir(), key[:2], key[2:]+".md.zst")
}

// Key derives a cache key from the given parts (export bytes, options
// fingerprint). Each part is length-prefixed so distinct part boundaries
// never collide.
func Key(parts ...[]byte) string {
	h := sha256.New()
	var n [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(n[:], uint64(len(p)))
		h.Write(n[:])
		h.Write(p)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Write stores rendered content under key. Re-writing an existing key is a
// no-op.
func Write(key, content string) error {
	p := path(key)
	if _, err := os.Stat(p); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fmt.Errorf("creating CAS directory: %w", err)
	}

	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	if err != nil {
		return fmt.Errorf("creating zstd writer: %w", err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		w.Close()
		return fmt.Errorf("compressing CAS content: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing zstd writer: %w", err)
	}

	if err := os.WriteFile(p, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing CAS file: %w", err)
	}

	return nil
}

// Read retrieves rendered content by key.
func Read(key string) (string, error) {
	f, err := os.Open(path(key))
	if err != nil {
		return "", fmt.Errorf("reading CAS file %s: %w", key, err)
	}
	defer f.Close()

	r, err := zstd.NewReader(f)
	if err != nil {
		return "", fmt.Errorf("creating zstd reader: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("decompressing CAS file %s: %w", key, err)
	}
	return string(data), nil
}

// Has reports whether key is cached.
func Has(key string) bool {
	_, err := os.Stat(path(key))
	return err == nil
}

// Clear removes the whole cache directory.
func Clear() error {
	if err := os.RemoveAll(Dir()); err != nil {
		return fmt.Errorf("clearing CAS directory: %w", err)
	}
	return nil
}
