package projdash

import (
	"fmt"
	"regexp"
)

// DefaultProjectIDPattern matches exactly four digits standing on their own.
const DefaultProjectIDPattern = `\b\d{4}\b`

// Classifier decides which sheets are project sheets.
type Classifier struct {
	pattern *regexp.Regexp
}

// NewClassifier compiles a project id pattern. The first match in a sheet
// name carries the project id: the first capture group when the pattern has
// one, otherwise the whole match.
func NewClassifier(pattern string) (*Classifier, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: project id pattern: %v", ErrInvalidOptions, err)
	}
	return &Classifier{pattern: re}, nil
}

// DefaultClassifier uses DefaultProjectIDPattern.
func DefaultClassifier() *Classifier {
	return &Classifier{pattern: regexp.MustCompile(DefaultProjectIDPattern)}
}

// IsProjectSheet reports whether name carries a project id.
func (c *Classifier) IsProjectSheet(name string) bool {
	return c.find(name) != ""
}

// ExtractProjectID returns the first project id in name.
func (c *Classifier) ExtractProjectID(name string) (string, error) {
	id := c.find(name)
	if id == "" {
		return "", fmt.Errorf("%w: %q", ErrIDNotFound, name)
	}
	return id, nil
}

func (c *Classifier) find(name string) string {
	m := c.pattern.FindStringSubmatch(name)
	switch {
	case m == nil:
		return ""
	case len(m) > 1:
		return m[1]
	default:
		return m[0]
	}
}
