package logging

import (
	"fmt"
	"strings"
)

const (
	delimStart = '{'
	escapeChar = '\\'
	delimStr   = "{}"
)

// Formatted is the result of Format.
type Formatted struct {
	// Message is the template with placeholders substituted.
	Message string
	// Err is a trailing error argument no placeholder consumed.
	Err error
}

// Format replaces "{}" placeholders in template with args, in order.
//
// "\{}" renders a literal "{}" and "\\{}" renders a backslash followed by
// a substituted argument. Placeholders without an argument are left as is.
// If the last argument is an error and was not consumed, it is returned
// in Err instead of being rendered.
func Format(template string, args ...any) Formatted {
	var trailing error
	if n := len(args); n > 0 {
		if err, ok := args[n-1].(error); ok {
			trailing = err
		}
	}

	if len(args) == 0 {
		return Formatted{Message: template}
	}

	var sb strings.Builder
	sb.Grow(len(template) + 16*len(args))

	i := 0
	used := 0
	for used < len(args) {
		j := strings.Index(template[i:], delimStr)
		if j < 0 {
			break
		}
		j += i

		switch {
		case isEscaped(template, j) && !isDoubleEscaped(template, j):
			// "\{}": drop the backslash, keep the braces.
			sb.WriteString(template[i : j-1])
			sb.WriteByte(delimStart)
			i = j + 1
		case isDoubleEscaped(template, j):
			// "\\{}": keep one backslash, substitute.
			sb.WriteString(template[i : j-1])
			sb.WriteString(stringify(args[used]))
			used++
			i = j + 2
		default:
			sb.WriteString(template[i:j])
			sb.WriteString(stringify(args[used]))
			used++
			i = j + 2
		}
	}
	sb.WriteString(template[i:])

	if used == len(args) {
		trailing = nil
	}
	return Formatted{Message: sb.String(), Err: trailing}
}

func isEscaped(s string, at int) bool {
	return at > 0 && s[at-1] == escapeChar
}

func isDoubleEscaped(s string, at int) bool {
	return at > 1 && s[at-1] == escapeChar && s[at-2] == escapeChar
}

func stringify(v any) (s string) {
	if v == nil {
		return "null"
	}
	defer func() {
		if r := recover(); r != nil {
			s = "[FAILED toString()]"
		}
	}()
	switch t := v.(type) {
	case string:
		return t
	case error:
		return t.Error()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}
