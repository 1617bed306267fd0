package markdown

import "strings"

// Parse splits src into blocks with a single forward pass over its lines.
// Each line is classified by the first matching rule, in order: fenced
// code, horizontal rule, heading, table, unordered list, ordered list,
// blockquote, blank, paragraph. Parse never fails; anything unrecognised
// ends up as a one-line paragraph.
func Parse(src string) []Block {
	lines := strings.Split(src, "\n")
	var blocks []Block

	i := 0
	for i < len(lines) {
		line := lines[i]

		if isFence(line) {
			cb := &CodeBlock{Lang: fenceLang(line)}
			i++
			for i < len(lines) && !isFence(lines[i]) {
				cb.Lines = append(cb.Lines, lines[i])
				i++
			}
			if i < len(lines) {
				i++ // closing fence
			} else {
				cb.Unterminated = true
			}
			blocks = append(blocks, cb)
			continue
		}

		if isRule(line) {
			blocks = append(blocks, &HorizontalRule{})
			i++
			continue
		}

		if level, text, ok := parseHeading(line); ok {
			blocks = append(blocks, &Heading{Level: level, Text: text, ID: Slug(text)})
			i++
			continue
		}

		if strings.Contains(line, "|") && i+1 < len(lines) && isTableSeparator(lines[i+1]) {
			t := &Table{Header: splitRow(line)}
			i += 2
			for i < len(lines) && strings.Contains(lines[i], "|") {
				t.Rows = append(t.Rows, splitRow(lines[i]))
				i++
			}
			blocks = append(blocks, t)
			continue
		}

		if _, ok := bulletItem(line); ok {
			ul := &UnorderedList{}
			for i < len(lines) {
				item, ok := bulletItem(lines[i])
				if !ok {
					break
				}
				ul.Items = append(ul.Items, item)
				i++
			}
			blocks = append(blocks, ul)
			continue
		}

		if _, ok := orderedItem(line); ok {
			ol := &OrderedList{}
			for i < len(lines) {
				item, ok := orderedItem(lines[i])
				if !ok {
					break
				}
				ol.Items = append(ol.Items, item)
				i++
			}
			blocks = append(blocks, ol)
			continue
		}

		if strings.HasPrefix(line, ">") {
			var parts []string
			for i < len(lines) && strings.HasPrefix(lines[i], ">") {
				parts = append(parts, quoteText(lines[i]))
				i++
			}
			blocks = append(blocks, &Blockquote{Text: strings.Join(parts, " ")})
			continue
		}

		if isBlank(line) {
			i++
			continue
		}

		blocks = append(blocks, &Paragraph{Text: line})
		i++
	}
	return blocks
}

// ExtractTOC collects level 2 and 3 headings in document order. Lines
// inside fenced code are skipped. Table bodies are not tracked, so a row
// that starts with "## " is listed even though Parse keeps it as a row.
func ExtractTOC(src string) []TOCEntry {
	var toc []TOCEntry
	inCode := false
	for _, line := range strings.Split(src, "\n") {
		if isFence(line) {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}
		level, text, ok := parseHeading(line)
		if !ok || level < 2 || level > 3 {
			continue
		}
		toc = append(toc, TOCEntry{Level: level, Text: text, ID: Slug(text)})
	}
	return toc
}
