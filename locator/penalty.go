package locator

import (
	"regexp"
	"strings"
)

// Penalty weights. Ids are the cheapest anchors and positional predicates
// by far the most fragile; length only breaks ties.
const (
	idWeight        = 2
	attrWeight      = 5
	classWeight     = 10
	tagWeight       = 30
	positionWeight  = 1000
	lengthWeight    = 0.5
	volatileWeight  = 5000
	nonUniqueWeight = 10000
)

var volatileToken = regexp.MustCompile(`(?i)active|hover|focus|selected|disabled`)

type predicateCounts struct {
	ids, attrs, classes, tags, positions int
}

// countPredicates scans a structural expression, ignoring escaped characters
// and the contents of quoted strings and attribute brackets.
func countPredicates(expr string) predicateCounts {
	var c predicateCounts
	compoundStart := true
	inBracket := false
	var quote byte
	for i := 0; i < len(expr); i++ {
		ch := expr[i]
		if ch == '\\' {
			i = skipEscape(expr, i)
			compoundStart = false
			continue
		}
		if quote != 0 {
			if ch == quote {
				quote = 0
			}
			continue
		}
		if inBracket {
			switch ch {
			case '"', '\'':
				quote = ch
			case ']':
				inBracket = false
			}
			continue
		}
		switch {
		case ch == ' ' || ch == '>' || ch == '+' || ch == '~':
			compoundStart = true
			continue
		case ch == '#':
			c.ids++
		case ch == '.':
			c.classes++
		case ch == '[':
			c.attrs++
			inBracket = true
		case ch == ':':
			if strings.HasPrefix(expr[i:], ":nth-child(") {
				c.positions++
			}
			i = skipPseudo(expr, i)
		case compoundStart && isLetter(ch):
			c.tags++
			for i+1 < len(expr) && isNameChar(expr[i+1]) {
				i++
			}
		}
		compoundStart = false
	}
	return c
}

// skipEscape returns the index of the last byte of the escape starting at i.
func skipEscape(expr string, i int) int {
	j := i + 1
	hex := 0
	for j < len(expr) && hex < 6 && isHex(expr[j]) {
		j++
		hex++
	}
	if hex == 0 {
		return i + 1
	}
	if j < len(expr) && expr[j] == ' ' {
		return j
	}
	return j - 1
}

// skipPseudo returns the index of the last byte of a pseudo-class,
// including any parenthesised argument.
func skipPseudo(expr string, i int) int {
	j := i + 1
	for j < len(expr) && isNameChar(expr[j]) {
		j++
	}
	if j < len(expr) && expr[j] == '(' {
		depth := 0
		for ; j < len(expr); j++ {
			switch expr[j] {
			case '(':
				depth++
			case ')':
				depth--
			}
			if depth == 0 {
				return j
			}
		}
	}
	return j - 1
}

func isLetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

func isNameChar(b byte) bool {
	return isLetter(b) || (b >= '0' && b <= '9') || b == '-' || b == '_'
}

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// Penalty scores a structural expression; lower is more robust.
func Penalty(expr string) float64 {
	c := countPredicates(expr)
	p := float64(c.ids*idWeight + c.attrs*attrWeight + c.classes*classWeight +
		c.tags*tagWeight + c.positions*positionWeight)
	p += float64(len(expr)) * lengthWeight
	if volatileToken.MatchString(expr) {
		p += volatileWeight
	}
	return p
}
