package content

import (
	"sort"
	"strconv"
	"strings"
)

// ExtractNumber concatenates every ASCII digit of s and parses the result.
// No digits, or a run too long for uint64, yields 0.
func ExtractNumber(s string) uint64 {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseUint(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// CompareFlat orders labels by their extracted number, then lexically
func CompareFlat(a, b string) int {
	na, nb := ExtractNumber(a), ExtractNumber(b)
	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	}
	return strings.Compare(a, b)
}

// segment is one dot-separated part of a code such as "5.1a".
// "1a" parses as {num: 1, hasNum: true, suffix: "a"}.
type segment struct {
	num    uint64
	hasNum bool
	suffix string
}

func parseSegments(code string) []segment {
	if code == "" {
		return nil
	}
	parts := strings.Split(code, ".")
	segs := make([]segment, 0, len(parts))
	for _, p := range parts {
		i := 0
		for i < len(p) && p[i] >= '0' && p[i] <= '9' {
			i++
		}
		seg := segment{suffix: p[i:]}
		if i > 0 {
			if n, err := strconv.ParseUint(p[:i], 10, 64); err == nil {
				seg.num, seg.hasNum = n, true
			} else {
				seg.suffix = p
			}
		}
		segs = append(segs, seg)
	}
	return segs
}

func (s segment) compare(o segment) int {
	switch {
	case s.hasNum && !o.hasNum:
		return -1
	case !s.hasNum && o.hasNum:
		return 1
	case s.hasNum && s.num != o.num:
		if s.num < o.num {
			return -1
		}
		return 1
	}
	return strings.Compare(s.suffix, o.suffix)
}

// CompareDotted orders hierarchical codes segment by segment:
// "1.1.1" < "1.2" < "1.11" < "1.11.1" < "2.1".
// Equal prefixes put the shorter code first; remaining ties fall back to
// a lexical comparison so distinct codes never compare equal.
func CompareDotted(a, b string) int {
	sa, sb := parseSegments(a), parseSegments(b)
	for i := 0; i < len(sa) && i < len(sb); i++ {
		if c := sa[i].compare(sb[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(sa) < len(sb):
		return -1
	case len(sa) > len(sb):
		return 1
	}
	return strings.Compare(a, b)
}

// SortDotted sorts codes in place with CompareDotted
func SortDotted(codes []string) {
	sort.SliceStable(codes, func(i, j int) bool {
		return CompareDotted(codes[i], codes[j]) < 0
	})
}
