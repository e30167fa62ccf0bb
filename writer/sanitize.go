package writer

import (
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

// Sanitize rewrites name into a valid DAMSON target identifier: alnum and
// underscore only. Names made only of letters, digits and underscores (such
// as the splitter's own "<parent>_sub<i>" scheme) are kept as they are;
// names carrying other characters, e.g. punctuation from a definition URL or
// user-chosen component name, are first normalised to snake_case.
func Sanitize(name string) string {
	s := name
	if strings.IndexFunc(name, func(r rune) bool { return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') }) >= 0 {
		s = strcase.ToSnake(name)
	}
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" {
		return "_"
	}
	if unicode.IsDigit(rune(out[0])) {
		out = "_" + out
	}
	return out
}
