package shell

import "strings"

// complete extends the word before the cursor to a command name. Candidates
// are top-level names for the first word and children of the resolved path
// for later words.
func (s *Shell) complete() bool {
	if !s.ed.AtEnd() || s.ed.Empty() {
		return false
	}
	line := string(s.ed.Bytes())
	var argv [MaxArgs]string
	toks, ok := Tokenize(line, argv[:])
	if !ok {
		return false
	}
	prefix := ""
	parents := toks
	if last := line[len(line)-1]; last != ' ' && last != '\t' && len(toks) > 0 {
		prefix = toks[len(toks)-1]
		parents = toks[:len(toks)-1]
	}

	matches := s.completions(parents, prefix)
	if len(matches) == 0 {
		return false
	}

	common := matches[0]
	for _, m := range matches[1:] {
		common = commonPrefix(common, m)
	}
	inserted := false
	for i := len(prefix); i < len(common); i++ {
		if !s.insert(common[i]) {
			break
		}
		inserted = true
	}
	if len(matches) == 1 {
		return s.insert(' ') || inserted
	}

	s.out.WriteString("\n" + strings.Join(matches, "  ") + "\n")
	s.redraw()
	return true
}

func (s *Shell) completions(parents []string, prefix string) []string {
	var pool []*Command
	if len(parents) == 0 {
		for l := List(0); l < listCount; l++ {
			pool = append(pool, s.reg.lists[l]...)
		}
	} else {
		cmd, rest := s.reg.Resolve(parents)
		if cmd == nil || len(rest) > 0 {
			return nil
		}
		pool = cmd.children
	}

	var out []string
	for _, c := range pool {
		eachAlias(c.Name, func(alias string) bool {
			if strings.HasPrefix(alias, prefix) {
				out = append(out, alias)
			}
			return true
		})
	}
	return out
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
