package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixture = `{
  "sourceLanguage" : "en",
  "strings" : {
    "greeting" : {
      "comment" : "Home screen",
      "localizations" : {
        "en" : { "stringUnit" : { "state" : "translated", "value" : "Hello" } },
        "fr" : { "stringUnit" : { "state" : "translated", "value" : "Bonjour" } }
      }
    },
    "items" : {
      "localizations" : {
        "en" : {
          "variations" : {
            "plural" : {
              "one" : { "stringUnit" : { "state" : "translated", "value" : "%lld item" } },
              "other" : { "stringUnit" : { "state" : "translated", "value" : "%lld items" } }
            }
          }
        }
      }
    }
  },
  "version" : "1.0"
}
`

func writeCatalog(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))
	return path
}

type result struct {
	stdout string
	stderr string
	code   int
}

func execute(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

// mustRun runs args and decodes stdout into T.
func mustRun[T any](t *testing.T, args ...string) T {
	t.Helper()
	res := execute(t, args...)
	require.Equal(t, 0, res.code, res.stderr)
	var out T
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out), res.stdout)
	return out
}

type cliErrorBody struct {
	Error errorBody `json:"error"`
}

func failed(t *testing.T, wantCode int, args ...string) errorBody {
	t.Helper()
	res := execute(t, args...)
	require.Equal(t, wantCode, res.code, res.stdout)
	lines := strings.Split(strings.TrimSpace(res.stderr), "\n")
	var body cliErrorBody
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &body), res.stderr)
	return body.Error
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
