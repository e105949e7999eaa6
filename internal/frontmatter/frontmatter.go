// Package frontmatter splits Markdown pages into their leading YAML block and body.
//
// A block starts when the first line of the file is exactly "---" and ends at
// the next line that is "---" once surrounding whitespace is trimmed. CRLF line
// endings are normalized before splitting.
package frontmatter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-sitekit/internal/yamlutil"
)

// Delimiter bounds a front matter block.
const Delimiter = "---"

var (
	// ErrMissing indicates the page does not start with a delimiter line.
	ErrMissing = errors.New("frontmatter: missing leading delimiter")
	// ErrMalformed indicates the YAML block could not be decoded.
	ErrMalformed = errors.New("frontmatter: malformed block")
)

// Document is a page split into front matter and body.
type Document struct {
	Present bool   // first line is a delimiter
	Closed  bool   // a closing delimiter was found
	Raw     string // text between the delimiters, without them
	Body    string // everything after the closing delimiter
}

// Split separates content into front matter and body.
// Without a leading delimiter the whole content is returned as Body.
// An unclosed block keeps every remaining line in Raw and leaves Body empty.
func Split(content []byte) Document {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	first, rest, _ := strings.Cut(text, "\n")
	if strings.TrimRight(first, " \t") != Delimiter {
		return Document{Body: text}
	}

	lines := strings.SplitAfter(rest, "\n")
	var raw strings.Builder
	for i, line := range lines {
		if strings.TrimSpace(line) == Delimiter {
			return Document{
				Present: true,
				Closed:  true,
				Raw:     raw.String(),
				Body:    strings.Join(lines[i+1:], ""),
			}
		}
		raw.WriteString(line)
	}
	return Document{Present: true, Raw: raw.String()}
}

// Fields decodes the block as a YAML mapping.
// Returns ErrMissing when there is no block and ErrMalformed when decoding fails.
func (d Document) Fields() (map[string]any, error) {
	if !d.Present {
		return nil, ErrMissing
	}
	fields, err := yamlutil.UnmarshalMap([]byte(d.Raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return fields, nil
}

// HasKey reports whether a line in the block starts with "key:".
func (d Document) HasKey(key string) bool {
	re := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(key) + `\s*:`)
	return re.MatchString(d.Raw)
}

// HasLine reports whether the block holds the exact line "key: value",
// allowing only whitespace around the colon and at the end of the line.
func (d Document) HasLine(key, value string) bool {
	re := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(key) + `\s*:\s*` + regexp.QuoteMeta(value) + `[ \t]*$`)
	return re.MatchString(d.Raw)
}
