package extract

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// label maps a keyword predicate to a canonical value.
type label struct {
	keywords []string
	value    string
}

// classify returns the value of the first label with a keyword contained in
// s. Labels are checked in order, so earlier labels win when keywords co-occur.
func classify(s string, labels []label) (string, bool) {
	for _, l := range labels {
		for _, kw := range l.keywords {
			if strings.Contains(s, kw) {
				return l.value, true
			}
		}
	}
	return "", false
}

var vesselTypeLabels = []label{
	{[]string{"auto", "car", "vehicle"}, "Auto Carrier"},
	{[]string{"roro", "ro-ro"}, "RoRo Vessel"},
	{[]string{"container"}, "Container Ship"},
	{[]string{"multi"}, "Multi-Purpose"},
}

var companyLabels = []label{
	{[]string{"aps"}, "APS Stevedoring"},
	{[]string{"ssa"}, "SSA Marine"},
	{[]string{"ports"}, "Ports America"},
}

var zeePriorityLabels = []label{
	{[]string{"high"}, "high"},
	{[]string{"urgent"}, "urgent"},
	{[]string{"express"}, "express"},
}

var rejectedVesselNames = map[string]bool{
	"type":        true,
	"information": true,
	"details":     true,
}

func trimmed(c Candidate) (any, bool) {
	return trim(c.Value), true
}

func toInt(c Candidate) (any, bool) {
	n, err := strconv.Atoi(trim(c.Value))
	if err != nil {
		return nil, false
	}
	return n, true
}

func vesselName(c Candidate) (any, bool) {
	name := trim(c.Value)
	if utf8.RuneCountInString(name) <= 2 || rejectedVesselNames[strings.ToLower(name)] {
		return nil, false
	}
	return name, true
}

func vesselType(c Candidate) (any, bool) {
	v, ok := classify(strings.ToLower(trim(c.Value)), vesselTypeLabels)
	if !ok {
		return nil, false
	}
	return v, true
}

func port(c Candidate) (any, bool) {
	if strings.Contains(strings.ToLower(c.Value), "colonel") {
		return "Colonel Island", true
	}
	p := trim(c.Value)
	if utf8.RuneCountInString(p) <= 1 {
		return nil, false
	}
	return p, true
}

// operationDate accepts MM/DD/YYYY, rewriting it to YYYY-MM-DD, and
// YYYY-MM-DD as is. Other shapes are rejected.
func operationDate(c Candidate) (any, bool) {
	s := c.Value
	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) != 3 || utf8.RuneCountInString(parts[2]) != 4 {
			return nil, false
		}
		return fmt.Sprintf("%s-%s-%s", parts[2], zeroPad(parts[0], 2), zeroPad(parts[1], 2)), true
	}
	if strings.Contains(s, "-") && utf8.RuneCountInString(strings.SplitN(s, "-", 2)[0]) == 4 {
		return s, true
	}
	return nil, false
}

func zeroPad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return strings.Repeat("0", width-n) + s
	}
	return s
}

func company(c Candidate) (any, bool) {
	if v, ok := classify(strings.ToLower(c.Match), companyLabels); ok {
		return v, true
	}
	return trim(c.Value), true
}

// operationType classifies in priority order: a discharge combined with
// loading, "both" or "+" is a combined operation.
func operationType(c Candidate) (any, bool) {
	op := strings.ToLower(c.Value)
	discharge := strings.Contains(op, "discharge")
	loading := strings.Contains(op, "loading")
	both := strings.Contains(op, "both")
	switch {
	case discharge && (loading || both || strings.Contains(op, "+")):
		return "Discharge + Loading", true
	case discharge:
		return "Discharge Only", true
	case loading:
		return "Loading Only", true
	case both:
		return "Discharge + Loading", true
	}
	return nil, false
}

// knownPerson returns a normalizer that substitutes fullName whenever the
// whole match mentions keyword.
func knownPerson(keyword, fullName string) Normalizer {
	return func(c Candidate) (any, bool) {
		if strings.Contains(strings.ToLower(c.Match), keyword) {
			return fullName, true
		}
		return trim(c.Value), true
	}
}

// berth accepts identifiers naming berth 1, 2 or 3.
func berth(c Candidate) (any, bool) {
	id := trim(c.Value)
	switch id {
	case "1", "2", "3":
		return "Berth " + id, true
	}
	if !strings.ContainsAny(id, "123") {
		return nil, false
	}
	if strings.Contains(strings.ToLower(id), "berth") {
		return titleCase(id), true
	}
	for _, n := range []string{"1", "2", "3"} {
		if strings.Contains(id, n) {
			return "Berth " + n, true
		}
	}
	return nil, false
}

func zeePriority(c Candidate) (any, bool) {
	if v, ok := classify(strings.ToLower(trim(c.Value)), zeePriorityLabels); ok {
		return v, true
	}
	return "standard", true
}

func vanToken(c Candidate) (any, bool) {
	return "V" + c.Value, true
}

// titleCase upper-cases the first cased letter of every run of cased
// letters and lower-cases the rest. Any other character starts a new run.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevCased := false
	for _, r := range s {
		cased := unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
		switch {
		case cased && !prevCased:
			b.WriteRune(unicode.ToTitle(r))
		case cased:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevCased = cased
	}
	return b.String()
}
