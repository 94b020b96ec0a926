package launch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atomicstack/pie-launcher/internal/directory"
)

// ErrEmptyExec is returned for an Exec line without a program.
var ErrEmptyExec = errors.New("launch: empty exec line")

// SplitExec tokenizes an Exec value. Arguments may be double-quoted; inside
// quotes a backslash escapes ", `, $ and \.
func SplitExec(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inQuote bool
		hasArg  bool
	)
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuote && r == '\\':
			if i+1 < len(runes) && strings.ContainsRune("\"`$\\", runes[i+1]) {
				i++
				cur.WriteRune(runes[i])
				continue
			}
			cur.WriteRune(r)
		case r == '"':
			inQuote = !inQuote
			hasArg = true
		case !inQuote && (r == ' ' || r == '\t'):
			if hasArg {
				args = append(args, cur.String())
				cur.Reset()
				hasArg = false
			}
		default:
			cur.WriteRune(r)
			hasArg = true
		}
	}
	if inQuote {
		return nil, fmt.Errorf("launch: unterminated quote in %q", line)
	}
	if hasArg {
		args = append(args, cur.String())
	}
	if len(args) == 0 {
		return nil, ErrEmptyExec
	}
	return args, nil
}

// ExpandExec turns an Exec value into an argv. File and URL codes take url
// when one is given and are dropped otherwise; %i, %c and %k expand from app.
// Deprecated codes are removed.
func ExpandExec(line string, app directory.App, url string) ([]string, error) {
	words, err := SplitExec(line)
	if err != nil {
		return nil, err
	}
	argv := make([]string, 0, len(words)+1)
	for _, word := range words {
		switch word {
		case "%f", "%F", "%u", "%U":
			if url != "" {
				argv = append(argv, url)
			}
			continue
		case "%i":
			if app.Icon != "" {
				argv = append(argv, "--icon", app.Icon)
			}
			continue
		}
		expanded, keep := expandWord(word, app, url)
		if keep {
			argv = append(argv, expanded)
		}
	}
	if len(argv) == 0 {
		return nil, ErrEmptyExec
	}
	return argv, nil
}

// expandWord replaces field codes embedded in a larger argument.
func expandWord(word string, app directory.App, url string) (string, bool) {
	if !strings.Contains(word, "%") {
		return word, true
	}
	var b strings.Builder
	runes := []rune(word)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' || i+1 == len(runes) {
			b.WriteRune(runes[i])
			continue
		}
		i++
		switch runes[i] {
		case '%':
			b.WriteRune('%')
		case 'f', 'F', 'u', 'U':
			b.WriteString(url)
		case 'c':
			b.WriteString(app.Label)
		case 'k':
			b.WriteString(app.Path)
		case 'i':
			b.WriteString(app.Icon)
		default:
			// %d %D %n %N %v %m are deprecated
		}
	}
	out := b.String()
	return out, out != ""
}
