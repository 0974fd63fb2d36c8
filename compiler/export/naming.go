package export

import (
	"fmt"
	"go/token"
	"strings"
	"sync"
	"unicode"

	"github.com/go-openapi/inflect"
)

var (
	rulesMu  sync.RWMutex
	rules    = ruleset()
	acronyms = make(map[string]struct{})
)

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	// Common initialisms from golint.
	for _, w := range []string{"ACL", "API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS", "RPC", "SLA", "SMTP", "SQL", "SSH", "TCP", "TLS", "TTL", "UDP", "UI", "UID", "URI", "URL", "UTF8", "UUID", "VM", "XML", "XMPP", "XSRF", "XSS"} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}

// AddAcronym adds a new acronym to the naming rules. Column and table words
// matching an acronym are upper-cased in generated identifiers.
func AddAcronym(word string) {
	rulesMu.Lock()
	defer rulesMu.Unlock()
	word = strings.ToUpper(word)
	acronyms[word] = struct{}{}
	rules.AddAcronym(word)
}

// pascal converts a SQL name into a PascalCase Go identifier.
//
//	pascal("user_id")    // UserID
//	pascal("order-item") // OrderItem
//	pascal("3d_model")   // X3dModel
func pascal(s string) string {
	rulesMu.RLock()
	defer rulesMu.RUnlock()
	words := strings.FieldsFunc(s, isSeparator)
	for i, w := range words {
		upper := strings.ToUpper(w)
		switch _, ok := acronyms[upper]; {
		case ok:
			words[i] = upper
		case w == upper:
			words[i] = rules.Capitalize(strings.ToLower(w))
		default:
			words[i] = rules.Capitalize(w)
		}
	}
	name := sanitize(strings.Join(words, ""))
	if name == "" || !unicode.IsLetter(rune(name[0])) {
		name = "X" + name
	}
	return name
}

// singular returns the PascalCase singular form of a table name.
func singular(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	if len(words) == 0 {
		return pascal(s)
	}
	rulesMu.RLock()
	words[len(words)-1] = rules.Singularize(words[len(words)-1])
	rulesMu.RUnlock()
	return pascal(strings.Join(words, "_"))
}

// plural returns the PascalCase plural form of a Go identifier.
func plural(s string) string {
	rulesMu.RLock()
	defer rulesMu.RUnlock()
	return rules.Pluralize(s)
}

// snake converts a SQL name into a lower-case file name stem.
func snake(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_")
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}

// sanitize drops the characters that cannot appear in a Go identifier.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return -1
	}, s)
}

// PackagePath splits a target package name into the slash-separated directory
// the files are written to, relative to the output directory, and the Go
// package name declared in them. A name without a slash is read as a
// dot-separated namespace.
//
//	PackagePath("com.example.model")    // "com/example/model", "model"
//	PackagePath("internal/model")       // "internal/model", "model"
func PackagePath(pkg string) (dir, name string, err error) {
	pkg = strings.TrimSpace(pkg)
	if pkg == "" {
		return "", "", fmt.Errorf("export: empty package name")
	}
	sep := "/"
	if !strings.Contains(pkg, "/") {
		sep = "."
	}
	parts := strings.Split(pkg, sep)
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			return "", "", fmt.Errorf("export: invalid package name %q", pkg)
		}
	}
	name = strings.ToLower(sanitize(parts[len(parts)-1]))
	switch {
	case name == "":
		return "", "", fmt.Errorf("export: invalid package name %q", pkg)
	case !unicode.IsLetter(rune(name[0])):
		return "", "", fmt.Errorf("export: package name %q must start with a letter", name)
	case token.IsKeyword(name):
		return "", "", fmt.Errorf("export: package name %q is a Go keyword", name)
	}
	return strings.Join(parts, "/"), name, nil
}
