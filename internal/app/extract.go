package app

import (
	"strings"
	"unicode"
)

// Reviews mirrored from the Ukrainian dashboard may carry structured
// sub-fields appended in-line, e.g.
//
//	"Zara schuldet mir 500€ … Опис: Проблеми з отриманням рахунків."
//
// A label is a vocabulary word immediately followed by a colon; its value
// runs to the next label-looking token (a capitalized word immediately
// followed by a colon) or end of string.
var commentLabels = []struct{ key, word string }{
	{"description", "Опис"},
	{"category", "Категорія"},
	{"priority", "Пріоритет"},
	{"status", "Статус"},
}

// Extraction is the single-field split used by the comments feed: the
// primary description label only, value running to end of string.
type Extraction struct {
	Content      string
	Description  *string
	OriginalText string
}

// AdvancedExtraction splits out every recognized label.
type AdvancedExtraction struct {
	Content          string
	AdditionalFields map[string]string
	OriginalText     string
}

// ParseCommentText splits a trailing description annotation out of free
// text. Never fails; empty input yields empty-string defaults.
func ParseCommentText(text string) Extraction {
	out := Extraction{Content: text, OriginalText: text}
	if text == "" {
		return out
	}

	rs := []rune(text)
	start, valueStart, ok := findLabelRun(rs, commentLabels[0].word, 0)
	if !ok {
		return out
	}
	desc := strings.TrimSpace(string(rs[valueStart:]))
	if desc == "" {
		return out
	}
	out.Description = &desc
	out.Content = strings.TrimSpace(string(rs[:backOverSpace(rs, start)]))
	return out
}

// ParseCommentTextAdvanced extracts every recognized label; each value
// stops at the next label-looking token so stacked fields survive.
func ParseCommentTextAdvanced(text string) AdvancedExtraction {
	out := AdvancedExtraction{
		Content:          text,
		AdditionalFields: map[string]string{},
		OriginalText:     text,
	}
	if text == "" {
		return out
	}

	rs := []rune(text)
	toks := scanLabelTokens(rs)
	if len(toks) == 0 {
		return out
	}

	type span struct{ from, to int }
	var cuts []span
	claimed := map[string]bool{}
	for i, tk := range toks {
		if tk.labelIdx < 0 {
			continue
		}
		key := commentLabels[tk.labelIdx].key
		if claimed[key] { // first occurrence wins, repeats stay in content
			continue
		}
		end := len(rs)
		if i+1 < len(toks) {
			end = backOverSpace(rs, toks[i+1].start)
		}
		val := strings.TrimSpace(string(rs[tk.valueStart:end]))
		if val == "" {
			continue
		}
		claimed[key] = true
		out.AdditionalFields[key] = val
		cuts = append(cuts, span{from: backOverSpace(rs, tk.start), to: end})
	}
	if len(cuts) == 0 {
		return out
	}

	var b strings.Builder
	pos := 0
	for _, c := range cuts {
		if c.from > pos {
			b.WriteString(string(rs[pos:c.from]))
		}
		pos = c.to
	}
	if pos < len(rs) {
		b.WriteString(string(rs[pos:]))
	}
	out.Content = strings.TrimSpace(b.String())
	return out
}

// labelToken marks a word immediately followed by a colon. labelIdx indexes
// commentLabels, or -1 for a bare capitalized boundary word.
type labelToken struct {
	start      int // first rune of the word
	valueStart int // rune after the colon
	labelIdx   int
}

func scanLabelTokens(rs []rune) []labelToken {
	var toks []labelToken
	for i := 0; i < len(rs); {
		if !unicode.IsLetter(rs[i]) || (i > 0 && unicode.IsLetter(rs[i-1])) {
			i++
			continue
		}
		j := i
		for j < len(rs) && unicode.IsLetter(rs[j]) {
			j++
		}
		if j < len(rs) && rs[j] == ':' {
			word := rs[i:j]
			if idx := labelIndex(word); idx >= 0 {
				toks = append(toks, labelToken{start: i, valueStart: j + 1, labelIdx: idx})
			} else if isBoundaryWord(word) {
				toks = append(toks, labelToken{start: i, valueStart: j + 1, labelIdx: -1})
			}
			i = j + 1
			continue
		}
		i = j
	}
	return toks
}

func labelIndex(word []rune) int {
	for i, l := range commentLabels {
		if strings.EqualFold(string(word), l.word) {
			return i
		}
	}
	return -1
}

// isBoundaryWord reports whether a word looks like the start of another
// labeled field: a capital letter followed by lowercase letters.
func isBoundaryWord(word []rune) bool {
	if len(word) < 2 || !unicode.IsUpper(word[0]) {
		return false
	}
	for _, r := range word[1:] {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// findLabelRun locates the first case-insensitive occurrence of word
// immediately followed by a colon, at a word boundary.
func findLabelRun(rs []rune, word string, from int) (start, valueStart int, ok bool) {
	w := []rune(word)
	for i := from; i+len(w) < len(rs); i++ {
		if i > 0 && unicode.IsLetter(rs[i-1]) {
			continue
		}
		if !runsEqualFold(rs[i:i+len(w)], w) {
			continue
		}
		if rs[i+len(w)] != ':' {
			continue
		}
		return i, i + len(w) + 1, true
	}
	return 0, 0, false
}

func runsEqualFold(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if unicode.ToLower(a[i]) != unicode.ToLower(b[i]) {
			return false
		}
	}
	return true
}

// backOverSpace steps a rune index back over any run of whitespace so the
// cut swallows the separator in front of a label.
func backOverSpace(rs []rune, i int) int {
	for i > 0 && unicode.IsSpace(rs[i-1]) {
		i--
	}
	return i
}
