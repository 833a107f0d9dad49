package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	latestName = "latest.xcstrings"
	historyDir = "history"
)

var pathSegmentRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizePathSegment reduces a segment to characters that are safe in an
// object key and cannot traverse upwards.
func sanitizePathSegment(segment string) string {
	segment = strings.Trim(segment, " /\\")
	segment = strings.ReplaceAll(segment, "..", "")
	segment = pathSegmentRegex.ReplaceAllString(segment, "_")
	return url.PathEscape(segment)
}

// catalogName identifies a catalog file inside the bucket.
func catalogName(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	sum := sha256.Sum256([]byte(filepath.ToSlash(abs)))

	base := strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	parent := filepath.Base(filepath.Dir(abs))

	parts := make([]string, 0, 3)
	for _, p := range []string{parent, base} {
		if s := sanitizePathSegment(p); s != "" && s != "." && s != "_" {
			parts = append(parts, s)
		}
	}
	parts = append(parts, hex.EncodeToString(sum[:4]))
	return strings.Join(parts, "-")
}

func (m *Mirror) latestKey(path string) string {
	return strings.Join([]string{m.cfg.Prefix, catalogName(path), latestName}, "/")
}

func (m *Mirror) historyKey(path string) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return strings.Join([]string{m.cfg.Prefix, catalogName(path), historyDir, id.String() + ".xcstrings"}, "/"), nil
}
