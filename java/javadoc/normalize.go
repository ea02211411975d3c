// Package javadoc turns raw documentation comments into plain prose.
package javadoc

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformed reports a comment without the /* ... */ delimiters. The
// upstream parser guarantees them, so hitting this is a collaborator bug:
// callers should fail loudly rather than attempt repair.
var ErrMalformed = errors.New("malformed doc comment")

// ErrNoProse reports a structurally valid comment with nothing left after
// stripping: an empty comment or one consisting only of tag lines.
var ErrNoProse = errors.New("doc comment has no prose")

var (
	leading  = regexp.MustCompile(`^/?\** ?`)
	trailing = regexp.MustCompile(`\**/$`)
)

// Normalize strips the comment framing from a raw delimited doc comment and
// returns the surviving prose.
//
// Each line is trimmed, a leading "/" and run of "*" plus at most one space
// are removed, and a trailing run of "*" plus "/" is removed. Lines that end
// up empty are dropped, as are @tag lines (annotation metadata, not prose).
// Survivors join with a single newline. Zero survivors is an error, not an
// empty string: callers only normalize present comments, and an all-tag or
// empty comment is an anomaly worth surfacing.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "/*") {
		return "", fmt.Errorf("%w: missing open delimiter in %q", ErrMalformed, trimmed)
	}
	if !strings.HasSuffix(trimmed, "*/") {
		return "", fmt.Errorf("%w: missing close delimiter in %q", ErrMalformed, trimmed)
	}
	var lines []string
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		line = leading.ReplaceAllString(line, "")
		line = trailing.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "@") {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("%w: %q", ErrNoProse, trimmed)
	}
	return strings.Join(lines, "\n"), nil
}
