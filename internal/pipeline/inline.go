package pipeline

import "regexp"

// inlinePattern matches emphasis spans. Alternatives are ordered longest
// delimiter first; RE2 picks the first alternative that matches at the
// leftmost position. Capture groups: 1 bold+italic, 2 and 4 bold, 3 and 5
// italic.
var inlinePattern = regexp.MustCompile(
	`\*\*\*([^*]+)\*\*\*|\*\*([^*]+)\*\*|\*([^*]+)\*|__([^_]+)__|_([^_]+)_`,
)

// FormatInline splits text into styled runs. Concatenating the Text of the
// returned runs yields text with the emphasis markers removed. Input without
// emphasis comes back as a single plain run.
func FormatInline(text string) []Run {
	matches := inlinePattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []Run{{Text: text}}
	}

	runs := make([]Run, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			runs = append(runs, Run{Text: text[last:m[0]]})
		}
		runs = append(runs, styledRun(text, m))
		last = m[1]
	}
	if last < len(text) {
		runs = append(runs, Run{Text: text[last:]})
	}
	return runs
}

// styledRun builds the run for one match from its populated capture group.
func styledRun(text string, m []int) Run {
	group := func(n int) (string, bool) {
		start, end := m[2*n], m[2*n+1]
		if start < 0 {
			return "", false
		}
		return text[start:end], true
	}

	if s, ok := group(1); ok {
		return Run{Text: s, Bold: true, Italic: true}
	}
	if s, ok := group(2); ok {
		return Run{Text: s, Bold: true}
	}
	if s, ok := group(3); ok {
		return Run{Text: s, Italic: true}
	}
	if s, ok := group(4); ok {
		return Run{Text: s, Bold: true}
	}
	s, _ := group(5)
	return Run{Text: s, Italic: true}
}

// PlainText concatenates the text of runs.
func PlainText(runs []Run) string {
	n := 0
	for _, r := range runs {
		n += len(r.Text)
	}
	buf := make([]byte, 0, n)
	for _, r := range runs {
		buf = append(buf, r.Text...)
	}
	return string(buf)
}
