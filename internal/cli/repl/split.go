package repl

import (
	"errors"
	"strings"
)

// ErrUnterminatedQuote is returned by Split for an unbalanced quote.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// Split breaks line into words. Whitespace separates words; single quotes
// preserve their content literally; double quotes preserve whitespace and
// honor backslash escapes; a backslash outside quotes escapes the next rune.
func Split(line string) ([]string, error) {
	var (
		words   []string
		current strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case quote == '\'':
			if r == '\'' {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case quote == '"':
			switch r {
			case '"':
				quote = 0
			case '\\':
				escaped = true
			default:
				current.WriteRune(r)
			}
		case r == '\\':
			escaped = true
			inWord = true
		case r == '\'' || r == '"':
			quote = r
			inWord = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if inWord {
				words = append(words, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 || escaped {
		return nil, ErrUnterminatedQuote
	}
	if inWord {
		words = append(words, current.String())
	}
	return words, nil
}
