// Package naming holds the read-only lookup tables used to turn TypeScript
// names into names the target language accepts.
//
// The tables are initialized once at package load and never written
// afterwards, so every function here is safe for concurrent use.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// reserved lists F# keywords and identifiers reserved for future use.
var reserved = map[string]struct{}{
	"abstract": {}, "and": {}, "as": {}, "assert": {}, "base": {}, "begin": {},
	"class": {}, "default": {}, "delegate": {}, "do": {}, "done": {},
	"downcast": {}, "downto": {}, "elif": {}, "else": {}, "end": {},
	"exception": {}, "extern": {}, "false": {}, "finally": {}, "fixed": {},
	"for": {}, "fun": {}, "function": {}, "global": {}, "if": {}, "in": {},
	"inherit": {}, "inline": {}, "interface": {}, "internal": {}, "lazy": {},
	"let": {}, "match": {}, "member": {}, "module": {}, "mutable": {},
	"namespace": {}, "new": {}, "not": {}, "null": {}, "of": {}, "open": {},
	"or": {}, "override": {}, "private": {}, "public": {}, "rec": {},
	"return": {}, "select": {}, "sig": {}, "static": {}, "struct": {},
	"then": {}, "to": {}, "true": {}, "try": {}, "type": {}, "upcast": {},
	"use": {}, "val": {}, "void": {}, "when": {}, "while": {}, "with": {},
	"yield": {},
	// reserved because they are OCaml keywords
	"asr": {}, "land": {}, "lor": {}, "lsl": {}, "lsr": {}, "lxor": {}, "mod": {},
	// reserved for future expansion
	"atomic": {}, "break": {}, "checked": {}, "component": {}, "const": {},
	"constraint": {}, "constructor": {}, "continue": {}, "eager": {},
	"event": {}, "external": {}, "functor": {}, "include": {}, "method": {},
	"mixin": {}, "object": {}, "parallel": {}, "process": {}, "protected": {},
	"pure": {}, "sealed": {}, "tailcall": {}, "trait": {}, "virtual": {},
	"volatile": {}, "params": {},
}

// symbolNames spells out enum case names that have no letters at all.
var symbolNames = map[string]string{
	"":   "Empty",
	"*":  "Star",
	"+":  "Plus",
	"-":  "Minus",
	"/":  "Slash",
	"\\": "Backslash",
	"=":  "Equals",
	"<":  "Lt",
	">":  "Gt",
	"&":  "Amp",
	"|":  "Pipe",
	"%":  "Percent",
	".":  "Dot",
	",":  "Comma",
	":":  "Colon",
	";":  "Semicolon",
	"@":  "At",
	"#":  "Hash",
	"!":  "Bang",
	"?":  "Question",
	"~":  "Tilde",
	"^":  "Caret",
	"$":  "Dollar",
}

const tick = "``"

// IsReserved reports whether name is a keyword of the target language.
func IsReserved(name string) bool {
	_, ok := reserved[name]
	return ok
}

// Escape returns name quoted with double backticks when it is reserved or
// not a plain identifier. Already escaped names and generic parameters
// ('T) are returned unchanged.
func Escape(name string) string {
	if name == "" || IsEscaped(name) || strings.HasPrefix(name, "'") {
		return name
	}
	if IsReserved(name) || !isIdentifier(name) {
		return tick + name + tick
	}
	return name
}

// IsEscaped reports whether name is already wrapped in double backticks.
func IsEscaped(name string) bool {
	return len(name) > 2*len(tick) && strings.HasPrefix(name, tick) && strings.HasSuffix(name, tick)
}

// Unescape strips the double backticks added by Escape.
func Unescape(name string) string {
	if IsEscaped(name) {
		return name[len(tick) : len(name)-len(tick)]
	}
	return name
}

// Normalize turns an arbitrary case name into a PascalCase identifier:
// runs of letters and digits become title-cased words, everything else is
// dropped. Names made only of symbols are spelled out.
func Normalize(name string) string {
	if n, ok := symbolNames[name]; ok {
		return n
	}
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	if len(words) == 0 {
		var b strings.Builder
		for _, r := range name {
			if n, ok := symbolNames[string(r)]; ok {
				b.WriteString(n)
			} else {
				b.WriteString("X")
			}
		}
		return b.String()
	}

	// cases.Caser keeps state between calls, one per call keeps Normalize reentrant
	caser := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, w := range words {
		b.WriteString(caser.String(w))
	}
	out := b.String()
	if r := []rune(out)[0]; unicode.IsDigit(r) {
		out = "_" + out
	}
	return out
}

// Sanitize replaces every rune that cannot appear in an identifier with '_'.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return '_'
	}, s)
}

func isIdentifier(name string) bool {
	for i, r := range name {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '\''):
		default:
			return false
		}
	}
	return true
}
