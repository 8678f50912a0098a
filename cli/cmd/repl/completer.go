package repl

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/cjhanks/appconf/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "list", "macros", "files", "reload", "edit", "clear", "quit"}

// pathCommands take a dotted path argument.
var pathCommands = []string{"list"}

// isWordBoundary reports whether r ends a completion word. Hyphens belong to
// keys (max-conns), dots separate path segments.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t':
		return true
	}

	return false
}

// wordBounds returns the word at the cursor position and its byte boundaries
// within input. The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// parentPath returns the dotted path leading up to the word starting at
// wordStart. For "list db.primary.ho" with the word "ho" it is "db.primary".
func parentPath(input string, wordStart int) string {
	prefix := input[:wordStart]
	if !strings.HasSuffix(prefix, ".") {
		return ""
	}

	prefix = strings.TrimRight(prefix, ".")
	if i := strings.LastIndexAny(prefix, " \t"); i >= 0 {
		prefix = prefix[i+1:]
	}

	return prefix
}

// childCandidates returns the keys of the section at the dotted parent path,
// or of the root when parent is empty. A parent that is not a section has no
// candidates.
func childCandidates(cfg *lang.Config, parent string) []string {
	if cfg == nil {
		return nil
	}

	var path []string
	if parent != "" {
		path = strings.Split(parent, ".")
	}

	v, ok := cfg.Find(path...)
	if !ok {
		return nil
	}

	sec, ok := v.(*lang.Section)
	if !ok {
		return nil
	}

	return sec.Keys()
}

// computeMatches calculates the fuzzy matches for the word at the cursor.
// After a dot every child is offered; an empty top-level word offers nothing
// so the hint stays visible.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())

	var candidates []string

	switch {
	case m.mode == modeCtrl && strings.IndexAny(input[:wordStart], " \t") < 0:
		candidates = ctrlCommands

	case m.mode == modeCtrl:
		fields := strings.Fields(input[:wordStart])
		if len(fields) == 0 || !slices.Contains(pathCommands, fields[0]) {
			return nil, wordStart, wordEnd
		}

		fallthrough

	default:
		parent := parentPath(input, wordStart)
		candidates = childCandidates(m.cfg, parent)

		if word == "" && parent != "" {
			matches = make(fuzzy.Matches, len(candidates))
			for i, c := range candidates {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, wordStart, wordEnd
		}
	}

	if word == "" || len(candidates) == 0 {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within width. The selected candidate (when tabbing) is highlighted.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if i > 0 && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters in bold.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base := suggestionStyle
	if selected {
		base = selectedStyle
	}

	highlight := base.Bold(true)

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}

// preview summarizes v on one line for the list command.
func preview(v lang.Value) string {
	switch v := v.(type) {
	case *lang.Section:
		return fmt.Sprintf("{ %d items }", v.Len())

	case *lang.Leaf:
		s := v.String()
		if len(s) > 40 {
			s = s[:37] + "..."
		}

		return v.Kind().String() + " " + s

	default:
		return "<unknown>"
	}
}
