package sitekit

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-sitekit/internal/dateutil"
	"github.com/alnah/go-sitekit/internal/frontmatter"
)

// ReadUpdatedStamp reads the page at path and returns UpdatedStamp of its
// content. Only I/O failures are reported; every content problem yields "".
func ReadUpdatedStamp(path, format string) (string, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path comes from configuration
	if err != nil {
		return "", fmt.Errorf("reading page: %w", err)
	}
	return UpdatedStamp(content, format), nil
}

// UpdatedStamp extracts the front matter "updated" value. ISO dates and
// timestamps are reformatted with format (dateutil tokens, "" means
// YYYY-MM-DD); any other string is returned as written. Missing front
// matter, malformed YAML, or a missing key give "".
func UpdatedStamp(content []byte, format string) string {
	doc := frontmatter.Split(content)
	if !doc.Present {
		return ""
	}
	fields, err := doc.Fields()
	if err != nil {
		return ""
	}
	if format == "" {
		format = dateutil.DefaultDateFormat
	}

	switch v := fields["updated"].(type) {
	case string:
		clean := strings.Trim(v, `"`)
		stamp, ok, err := dateutil.NormalizeStamp(clean, format)
		if err != nil || !ok {
			return v
		}
		return stamp
	case time.Time:
		layout, err := dateutil.ParseDateFormat(format)
		if err != nil {
			return v.Format("2006-01-02")
		}
		return v.Format(layout)
	default:
		return ""
	}
}
