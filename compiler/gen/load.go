package gen

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// load reads the schema description and executes it as one batch.
func (g *Generator) load(ctx context.Context, db Database) error {
	text, err := g.readSchema()
	if err != nil {
		return NewSchemaLoadError(g.config.Schema, err)
	}
	if err := db.ExecBatch(ctx, text); err != nil {
		return NewSchemaExecutionError(g.config.Schema, err)
	}
	return nil
}

// readSchema reads the whole schema file as UTF-8, dropping a leading
// byte-order mark. Invalid UTF-8 is an error; bytes are never replaced. Line
// terminators are normalized to "\n" and every line, the last one included,
// ends with one.
func (g *Generator) readSchema() (string, error) {
	f, err := os.Open(g.config.Schema)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := f.Close(); err != nil {
			g.logger.Warn("close schema file", "schema", g.config.Schema, "error", err)
		}
	}()
	raw, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	if off := invalidUTF8(raw); off >= 0 {
		return "", fmt.Errorf("invalid UTF-8 at byte %d", off)
	}
	data, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), raw)
	if err != nil {
		return "", err
	}
	return normalizeNewlines(string(data)), nil
}

// invalidUTF8 returns the offset of the first invalid UTF-8 sequence in b,
// or -1.
func invalidUTF8(b []byte) int {
	for i := 0; i < len(b); {
		r, n := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && n == 1 {
			return i
		}
		i += n
	}
	return -1
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func normalizeNewlines(s string) string {
	s = newlines.Replace(s)
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s
}
