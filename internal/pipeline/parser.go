package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled line patterns.
var (
	headingPattern   = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	unorderedPattern = regexp.MustCompile(`^[-*+]\s+(.+)$`)
	orderedPattern   = regexp.MustCompile(`^\d+\.\s+(.+)$`)

	// Standalone image line: the whole trimmed line is one image.
	imageLinePattern = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)]+)\)\s*$`)

	// Image marker anywhere inside paragraph text.
	inlineImagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
)

const fence = "```"

// BlockParser defines the contract for turning Markdown into blocks.
type BlockParser interface {
	Parse(content string) []Block
}

// LineParser is the line-oriented BlockParser. It never fails: input that
// matches no construct degrades to paragraphs.
type LineParser struct{}

// Parse implements BlockParser.
func (LineParser) Parse(content string) []Block {
	return Parse(content)
}

// Parse splits content on "\n" and scans it once, producing blocks in
// document order.
func Parse(content string) []Block {
	p := &blockParser{lines: strings.Split(content, "\n")}
	return p.run()
}

// blockParser is the cursor state of one Parse call.
type blockParser struct {
	lines []string
	pos   int
}

// rule inspects the line at the cursor. When ok is true it consumed
// lines (at least one) and produced blocks (possibly none).
type rule func(p *blockParser) (blocks []Block, consumed int, ok bool)

// rules is the dispatch table in priority order. paragraphRule accepts
// every line, so the table always makes progress.
var rules = []rule{
	(*blockParser).fenceRule,
	(*blockParser).headingRule,
	(*blockParser).tableRule,
	(*blockParser).listRule,
	(*blockParser).imageRule,
	(*blockParser).blankRule,
	(*blockParser).paragraphRule,
}

func (p *blockParser) run() []Block {
	var blocks []Block
	for p.pos < len(p.lines) {
		for _, r := range rules {
			out, consumed, ok := r(p)
			if !ok {
				continue
			}
			blocks = append(blocks, out...)
			p.pos += consumed
			break
		}
	}
	return blocks
}

func (p *blockParser) line() string {
	return p.lines[p.pos]
}

// fenceRule consumes a fenced code block. Lines inside the fence are not
// examined by any other rule. An unterminated fence runs to end of input.
func (p *blockParser) fenceRule() ([]Block, int, bool) {
	open := strings.TrimSpace(p.line())
	if !strings.HasPrefix(open, fence) {
		return nil, 0, false
	}
	lang := strings.TrimSpace(open[len(fence):])

	var body []string
	i := p.pos + 1
	for ; i < len(p.lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(p.lines[i]), fence) {
			break
		}
		body = append(body, p.lines[i])
	}
	consumed := i - p.pos + 1
	if i >= len(p.lines) {
		consumed = len(p.lines) - p.pos
	}
	return []Block{Code{Text: strings.Join(body, "\n"), Language: lang}}, consumed, true
}

func (p *blockParser) headingRule() ([]Block, int, bool) {
	m := headingPattern.FindStringSubmatch(p.line())
	if m == nil {
		return nil, 0, false
	}
	return []Block{Heading{Level: len(m[1]), Text: strings.TrimSpace(m[2])}}, 1, true
}

// tableRule greedily collects table-row candidates. The attempt is
// abandoned unless the second row is a separator, leaving the start line to
// the lower-priority rules.
func (p *blockParser) tableRule() ([]Block, int, bool) {
	end := p.pos
	for end < len(p.lines) && isTableRow(p.lines[end]) {
		end++
	}
	rows := p.lines[p.pos:end]
	if len(rows) < 2 || !isSeparatorRow(rows[1]) {
		return nil, 0, false
	}

	t := Table{Headers: splitTableRow(rows[0])}
	for _, row := range rows[2:] {
		if strings.TrimSpace(row) == "" {
			continue
		}
		t.Rows = append(t.Rows, splitTableRow(row))
	}
	return []Block{t}, len(rows), true
}

// listRule collects items of the type of the first item. A single blank
// line followed by another item is absorbed. Two blank lines, a non-item
// line or an item of the other type end the list; the terminating line is
// left for the next rule.
func (p *blockParser) listRule() ([]Block, int, bool) {
	kind, _, ok := listItem(p.line())
	if !ok {
		return nil, 0, false
	}

	list := List{Type: kind}
	i := p.pos
	for i < len(p.lines) {
		line := p.lines[i]
		itemKind, text, isItem := listItem(line)
		if !isItem {
			if strings.TrimSpace(line) != "" {
				break
			}
			if i+1 >= len(p.lines) || strings.TrimSpace(p.lines[i+1]) == "" {
				break
			}
			if _, _, next := listItem(p.lines[i+1]); !next {
				break
			}
			i++
			continue
		}
		if itemKind != kind {
			break
		}
		list.Items = append(list.Items, ListItem{Text: text})
		i++
	}

	if len(list.Items) == 0 {
		return nil, 0, false
	}
	return []Block{list}, i - p.pos, true
}

func (p *blockParser) imageRule() ([]Block, int, bool) {
	m := imageLinePattern.FindStringSubmatch(strings.TrimSpace(p.line()))
	if m == nil {
		return nil, 0, false
	}
	return []Block{Image{URL: m[2], Alt: m[1]}}, 1, true
}

func (p *blockParser) blankRule() ([]Block, int, bool) {
	if strings.TrimSpace(p.line()) != "" {
		return nil, 0, false
	}
	return nil, 1, true
}

// paragraphRule takes the current line unconditionally, then keeps joining
// lines until one could start another construct.
func (p *blockParser) paragraphRule() ([]Block, int, bool) {
	parts := []string{p.line()}
	i := p.pos + 1
	for ; i < len(p.lines); i++ {
		if startsBlock(p.lines[i]) {
			break
		}
		parts = append(parts, p.lines[i])
	}
	return splitParagraph(strings.Join(parts, " ")), i - p.pos, true
}

// startsBlock reports whether line ends a running paragraph.
func startsBlock(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	if strings.HasPrefix(line, "#") || strings.HasPrefix(trimmed, fence) {
		return true
	}
	if isTableRow(line) {
		return true
	}
	if _, _, ok := listItem(line); ok {
		return true
	}
	return imageLinePattern.MatchString(trimmed)
}

// splitParagraph emits the paragraph text, broken around inline image
// markers. Text between images is trimmed and dropped when empty.
func splitParagraph(text string) []Block {
	locs := inlineImagePattern.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return []Block{newParagraph(text)}
	}

	var blocks []Block
	last := 0
	for _, loc := range locs {
		if seg := strings.TrimSpace(text[last:loc[0]]); seg != "" {
			blocks = append(blocks, newParagraph(seg))
		}
		blocks = append(blocks, Image{
			Alt: text[loc[2]:loc[3]],
			URL: text[loc[4]:loc[5]],
		})
		last = loc[1]
	}
	if seg := strings.TrimSpace(text[last:]); seg != "" {
		blocks = append(blocks, newParagraph(seg))
	}
	return blocks
}

func newParagraph(text string) Paragraph {
	return Paragraph{Text: text, Runs: FormatInline(text)}
}

// isTableRow is the loose row heuristic: a pipe with a leading pipe, or at
// least two pipes anywhere.
func isTableRow(line string) bool {
	if !strings.Contains(line, "|") {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(line), "|") || strings.Count(line, "|") >= 2
}

// isSeparatorRow reports whether line holds only pipes, dashes, colons and
// spaces.
func isSeparatorRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !isTableRow(trimmed) {
		return false
	}
	return strings.IndexFunc(trimmed, func(r rune) bool {
		return r != '|' && r != '-' && r != ':' && r != ' '
	}) < 0
}

func splitTableRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	cells := strings.Split(line, "|")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

// listItem matches a trimmed line against the bullet and numbered item
// syntaxes and returns the item text.
func listItem(line string) (ListType, string, bool) {
	trimmed := strings.TrimSpace(line)
	if m := unorderedPattern.FindStringSubmatch(trimmed); m != nil {
		return Unordered, m[1], true
	}
	if m := orderedPattern.FindStringSubmatch(trimmed); m != nil {
		return Ordered, m[1], true
	}
	return Unordered, "", false
}
