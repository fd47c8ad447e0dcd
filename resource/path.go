package resource

import (
	"net/url"
	"strings"

	"github.com/spf13/cast"

	"github.com/kbukum/neysla/errors"
)

// resolvePath joins base with the segments, placing delimiters[i] after
// segments[i]. There must be one delimiter per segment, or one fewer when
// the last segment is left open. Nil and empty delimiters are skipped.
//
// Each delimiter is escaped with url.PathEscape, so a value always fills
// exactly one path level: "a/b" becomes "a%2Fb" and "a b" becomes "a%20b".
// Callers that need several levels pass several delimiters.
func resolvePath(base string, segments []string, delimiters []any) (string, error) {
	if n := len(delimiters); n != len(segments) && n != len(segments)-1 {
		return "", errors.DelimiterMismatch(len(segments), n)
	}

	var b strings.Builder
	b.WriteString(base)
	for i, segment := range segments {
		b.WriteString(segment)
		if i < len(delimiters) {
			d, err := delimiterString(delimiters[i])
			if err != nil {
				return "", err
			}
			if d != "" {
				b.WriteByte('/')
				b.WriteString(url.PathEscape(d))
			}
		}
		if i < len(segments)-1 {
			b.WriteByte('/')
		}
	}
	return b.String(), nil
}

// delimiterString renders a scalar delimiter. Lists and maps are rejected.
func delimiterString(v any) (string, error) {
	switch v.(type) {
	case nil:
		return "", nil
	case map[string]any, []any, []string:
		return "", errors.InvalidConfig("delimiters", "must contain only scalar values")
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", errors.InvalidConfig("delimiters", "must contain only scalar values").WithCause(err)
	}
	return s, nil
}
