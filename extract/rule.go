package extract

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/harborline/shipdesk"
)

// Source selects the text a rule is matched against.
type Source int

const (
	// Clean is the normalized text.
	Clean Source = iota
	// Raw is the text as read from the document.
	Raw
)

// Policy decides which match of a rule becomes its value.
type Policy int

const (
	// FirstAccepted takes the first match, in pattern order then text order,
	// that the normalizer accepts.
	FirstAccepted Policy = iota

	// MaxInt takes the largest integer among the matches of the first
	// pattern that yields any integer.
	MaxInt

	// Spread assigns the first accepted matches of a pattern to the rule's
	// keys in order. Nothing is assigned unless the pattern yields at least
	// one accepted match per key.
	Spread
)

// Candidate is a single match of a rule pattern.
type Candidate struct {
	// Value is the first non-empty capture group, or the whole match when
	// the pattern has no groups.
	Value string
	// Match is the whole match.
	Match string
}

// Normalizer turns a candidate into a field value. Returning false rejects
// the candidate and lets the rule try the next one.
type Normalizer func(c Candidate) (any, bool)

// Rule resolves one field family. Every key receives the same value.
type Rule struct {
	Keys      []string
	Source    Source
	Policy    Policy
	Patterns  []*regexp.Regexp
	Normalize Normalizer
}

// apply resolves the rule and writes its value to out. Nothing is written
// when no candidate is accepted.
func (r *Rule) apply(clean, raw string, out shipdesk.Fields) {
	text := clean
	if r.Source == Raw {
		text = raw
	}
	normalize := r.Normalize
	if normalize == nil {
		normalize = trimmed
	}

	switch r.Policy {
	case FirstAccepted:
		for _, re := range r.Patterns {
			for _, m := range re.FindAllStringSubmatch(text, -1) {
				if v, ok := normalize(newCandidate(m)); ok {
					r.set(out, v)
					return
				}
			}
		}

	case MaxInt:
		for _, re := range r.Patterns {
			best, found := 0, false
			for _, m := range re.FindAllStringSubmatch(text, -1) {
				n, err := strconv.Atoi(newCandidate(m).Value)
				if errors.Is(err, strconv.ErrRange) {
					n, err = math.MaxInt, nil
				}
				if err != nil {
					continue
				}
				if !found || n > best {
					best, found = n, true
				}
			}
			if found {
				r.set(out, best)
				return
			}
		}

	case Spread:
		for _, re := range r.Patterns {
			var values []any
			for _, m := range re.FindAllStringSubmatch(text, -1) {
				if v, ok := normalize(newCandidate(m)); ok {
					values = append(values, v)
				}
			}
			if len(values) >= len(r.Keys) {
				for i, key := range r.Keys {
					out[key] = values[i]
				}
				return
			}
		}
	}
}

func (r *Rule) set(out shipdesk.Fields, v any) {
	for _, key := range r.Keys {
		out[key] = v
	}
}

func newCandidate(m []string) Candidate {
	c := Candidate{Match: m[0]}
	if len(m) == 1 {
		c.Value = m[0]
		return c
	}
	for _, g := range m[1:] {
		if g != "" {
			c.Value = g
			break
		}
	}
	return c
}

// spaceClass is the body of a character class matching the same whitespace
// as Normalize.
const spaceClass = `\s\v\p{Z}\x{85}\x{1c}-\x{1f}`

// pattern compiles a case-insensitive rule pattern. Every \s is widened to
// Unicode whitespace so raw-text rules see the same spaces Normalize does.
func pattern(expr string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("(?i)")
	inClass := false
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch {
		case c == '\\' && i+1 < len(expr):
			if expr[i+1] == 's' {
				if inClass {
					b.WriteString(spaceClass)
				} else {
					b.WriteString("[" + spaceClass + "]")
				}
			} else {
				b.WriteByte(c)
				b.WriteByte(expr[i+1])
			}
			i++
		case c == '[' && !inClass:
			inClass = true
			b.WriteByte(c)
		case c == ']' && inClass:
			inClass = false
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return regexp.MustCompile(b.String())
}

func patterns(exprs ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		res[i] = pattern(expr)
	}
	return res
}
