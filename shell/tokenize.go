package shell

import "errors"

// MaxArgs bounds the number of tokens in one command line.
const MaxArgs = 16

var (
	errTooManyArgs       = errors.New("too many arguments")
	errUnterminatedQuote = errors.New("unterminated quote")
)

// Tokenize splits line into out, reusing its backing array. Tokens are
// substrings of line. A ' or " opens a span closed only by the same quote
// character; the quotes are stripped and a token glued to a quote is emitted
// on its own. Tokenize reports false when more than cap(out) tokens would be
// produced or a quote is left open. A blank line yields an empty slice.
func Tokenize(line string, out []string) ([]string, bool) {
	toks, err := tokenize(line, out)
	return toks, err == nil
}

func tokenize(line string, out []string) ([]string, error) {
	out = out[:0]
	limit := cap(out)
	begin := -1
	var quote byte

	emit := func(end int) error {
		if len(out) >= limit {
			return errTooManyArgs
		}
		out = append(out, line[begin:end])
		begin = -1
		return nil
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			if c == quote {
				quote = 0
				if err := emit(i); err != nil {
					return nil, err
				}
			}
			continue
		}
		switch {
		case c == '\'' || c == '"':
			if begin >= 0 {
				if err := emit(i); err != nil {
					return nil, err
				}
			}
			quote = c
			begin = i + 1
		case c == ' ' || c == '\t':
			if begin >= 0 {
				if err := emit(i); err != nil {
					return nil, err
				}
			}
		case begin < 0:
			begin = i
		}
	}
	if quote != 0 {
		return nil, errUnterminatedQuote
	}
	if begin >= 0 {
		if err := emit(len(line)); err != nil {
			return nil, err
		}
	}
	return out, nil
}
