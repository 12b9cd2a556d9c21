package engine

import (
	"regexp"
	"strings"
)

// The scanner below backs the strict-undefined check. It extracts the root
// identifiers a template references so they can be validated against the
// configuration before render. Names bound by the template itself (loop
// variables, set/with assignments, import aliases) and names consumed by
// the language (tag keywords, tests, literals) are not configuration keys
// and are skipped, as are attribute accesses (x.y checks only x) and filter
// names (after a pipe).

var (
	commentRe  = regexp.MustCompile(`(?s)\{#.*?#\}`)
	tagRe      = regexp.MustCompile(`(?s)\{\{.*?\}\}|\{%.*?%\}`)
	stringRe   = regexp.MustCompile(`"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`)
	identRe    = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
	includeRe  = regexp.MustCompile(`\{%-?\s*(?:include|extends|import|from)\s+(?:"([^"]+)"|'([^']+)')`)
	verbatimRe = regexp.MustCompile(`(?s)\{%-?\s*verbatim\s*-?%\}.*?\{%-?\s*endverbatim\s*-?%\}`)
)

var tagKeywords = map[string]struct{}{
	"for": {}, "endfor": {}, "in": {}, "if": {}, "elif": {}, "else": {},
	"endif": {}, "not": {}, "and": {}, "or": {}, "is": {}, "set": {},
	"with": {}, "endwith": {}, "extends": {}, "include": {}, "import": {},
	"from": {}, "as": {}, "filter": {}, "endfilter": {}, "autoescape": {},
	"endautoescape": {}, "spaceless": {}, "endspaceless": {}, "cycle": {},
	"firstof": {}, "ifchanged": {}, "endifchanged": {}, "now": {},
	"widthratio": {}, "lorem": {}, "ssi": {}, "only": {},
	// literals
	"true": {}, "True": {}, "false": {}, "False": {}, "none": {},
	"None": {}, "nil": {},
	// tests usable after `is`
	"defined": {}, "undefined": {}, "even": {}, "odd": {},
	"divisibleby": {}, "iterable": {}, "sameas": {}, "callable": {},
	"lower": {}, "upper": {}, "string": {}, "number": {},
	// names the engine binds during execution
	"loop": {}, "forloop": {}, "super": {}, "block": {},
}

// Tags whose arguments never reference configuration keys.
var opaqueTags = map[string]struct{}{
	"block": {}, "endblock": {}, "comment": {}, "endcomment": {},
	"verbatim": {}, "endverbatim": {}, "templatetag": {}, "load": {},
}

// missingIdents returns the identifiers referenced by src that known does
// not recognize, in order of first appearance.
func missingIdents(src string, known func(string) bool) []string {
	src = verbatimRe.ReplaceAllString(src, " ")
	src = commentRe.ReplaceAllString(src, " ")

	bound := map[string]struct{}{}
	seen := map[string]struct{}{}
	var missing []string

	for _, tag := range tagRe.FindAllString(src, -1) {
		isStmt := strings.HasPrefix(tag, "{%")
		content := strings.Trim(tag[2:len(tag)-2], "-")
		content = stringRe.ReplaceAllString(content, `""`)

		locs := identRe.FindAllStringIndex(content, -1)
		words := make([]string, len(locs))
		for i, loc := range locs {
			words[i] = content[loc[0]:loc[1]]
		}

		tagName := ""
		if isStmt && len(words) > 0 {
			tagName = words[0]
		}
		if _, ok := opaqueTags[tagName]; ok {
			continue
		}
		if tagName == "macro" || tagName == "endmacro" {
			// Macro names and parameters become local bindings.
			for _, word := range words[1:] {
				bound[word] = struct{}{}
			}
			continue
		}

		inForHead := tagName == "for"

		for i, loc := range locs {
			word := words[i]
			if isStmt && i == 0 && word == tagName {
				continue
			}

			if inForHead {
				if word == "in" {
					inForHead = false
					continue
				}
				bound[word] = struct{}{}
				continue
			}

			if prev := prevNonSpace(content, loc[0]); prev == '.' || prev == '|' {
				continue
			}
			if _, ok := tagKeywords[word]; ok {
				continue
			}
			if _, ok := bound[word]; ok {
				continue
			}

			// Assignment targets in set/with tags are bindings, not reads.
			if tagName == "set" || tagName == "with" {
				if next, at := nextNonSpace(content, loc[1]); next == '=' && !strings.HasPrefix(content[at:], "==") {
					bound[word] = struct{}{}
					continue
				}
			}
			// `... as alias` introduces a binding.
			if i > 0 && words[i-1] == "as" {
				bound[word] = struct{}{}
				continue
			}
			// `x is defined` and `x|default:...` are the supported ways to
			// probe for an unset key, mirroring strict-undefined engines. A
			// probed identifier counts as bound afterwards, so guarded reads
			// like {% if x is defined %}{{ x }}{% endif %} pass.
			if i+2 < len(words) && words[i+1] == "is" &&
				(words[i+2] == "defined" || words[i+2] == "undefined") {
				bound[word] = struct{}{}
				continue
			}
			if next, _ := nextNonSpace(content, loc[1]); next == '|' && i+1 < len(words) && words[i+1] == "default" {
				continue
			}

			if known(word) {
				continue
			}
			if _, dup := seen[word]; !dup {
				seen[word] = struct{}{}
				missing = append(missing, word)
			}
		}
	}
	return missing
}

// referencedTemplates returns the template paths named by include, extends,
// import and from tags with literal arguments.
func referencedTemplates(src string) []string {
	var out []string
	for _, match := range includeRe.FindAllStringSubmatch(src, -1) {
		path := match[1]
		if path == "" {
			path = match[2]
		}
		if path != "" {
			out = append(out, path)
		}
	}
	return out
}

func prevNonSpace(s string, i int) byte {
	for i--; i >= 0; i-- {
		if s[i] != ' ' && s[i] != '\t' && s[i] != '\n' && s[i] != '\r' {
			return s[i]
		}
	}
	return 0
}

func nextNonSpace(s string, i int) (byte, int) {
	for ; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' && s[i] != '\n' && s[i] != '\r' {
			return s[i], i
		}
	}
	return 0, len(s)
}
