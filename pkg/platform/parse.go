// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenIdent tokenKind = iota
	tokenString
	tokenLeftParen
	tokenRightParen
	tokenComma
	tokenEquals
	tokenInvalid
)

type token struct {
	kind tokenKind
	text string
}

// lex splits a cfg expression body into tokens. Invalid runes become a
// single invalid token so the parser can report them.
func lex(s string) []token {
	var tokens []token
	runes := []rune(s)

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			tokens = append(tokens, token{kind: tokenLeftParen})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokenRightParen})
			i++
		case r == ',':
			tokens = append(tokens, token{kind: tokenComma})
			i++
		case r == '=':
			tokens = append(tokens, token{kind: tokenEquals})
			i++
		case r == '"':
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == '"' {
					end = j
					break
				}
			}
			if end < 0 {
				tokens = append(tokens, token{kind: tokenInvalid, text: string(runes[i:])})
				return tokens
			}
			tokens = append(tokens, token{kind: tokenString, text: string(runes[i+1 : end])})
			i = end + 1
		case r == '_' || unicode.IsLetter(r):
			j := i
			for j < len(runes) && (runes[j] == '_' || unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j])) {
				j++
			}
			tokens = append(tokens, token{kind: tokenIdent, text: string(runes[i:j])})
			i = j
		default:
			tokens = append(tokens, token{kind: tokenInvalid, text: string(r)})
			i++
		}
	}
	return tokens
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peek() (token, bool) {
	if p.done() {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) next() (token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *parser) expect(kind tokenKind, what string) error {
	t, ok := p.next()
	if !ok {
		return fmt.Errorf("expected %s, found end of expression", what)
	}
	if t.kind != kind {
		return fmt.Errorf("expected %s, found `%s`", what, t.describe())
	}
	return nil
}

// expr parses one cfg expression node: all(...), any(...), not(...), a bare
// ident, or a `key = "value"` pair.
func (p *parser) expr() (Expr, error) {
	t, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("expected an expression, found end of expression")
	}
	if t.kind != tokenIdent {
		return nil, fmt.Errorf("expected an identifier, found `%s`", t.describe())
	}

	switch t.text {
	case "all", "any":
		if err := p.expect(tokenLeftParen, "`(`"); err != nil {
			return nil, err
		}
		children, err := p.exprList()
		if err != nil {
			return nil, err
		}
		if t.text == "all" {
			return ExprAll(children), nil
		}
		return ExprAny(children), nil

	case "not":
		if err := p.expect(tokenLeftParen, "`(`"); err != nil {
			return nil, err
		}
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokenRightParen, "`)`"); err != nil {
			return nil, err
		}
		return ExprNot{Inner: inner}, nil

	default:
		if next, ok := p.peek(); ok && next.kind == tokenEquals {
			p.pos++
			val, ok := p.next()
			if !ok || val.kind != tokenString {
				return nil, fmt.Errorf("expected a string after `%s =`", t.text)
			}
			return ExprOption{Key: t.text, Value: val.text, pair: true}, nil
		}
		return ExprOption{Key: t.text}, nil
	}
}

// exprList parses a comma-separated expression list up to and including the
// closing paren. Empty lists and trailing commas are accepted.
func (p *parser) exprList() ([]Expr, error) {
	var children []Expr
	for {
		t, ok := p.peek()
		if !ok {
			return nil, fmt.Errorf("expected `)`, found end of expression")
		}
		if t.kind == tokenRightParen {
			p.pos++
			return children, nil
		}
		child, err := p.expr()
		if err != nil {
			return nil, err
		}
		children = append(children, child)

		t, ok = p.peek()
		if ok && t.kind == tokenComma {
			p.pos++
		}
	}
}

func (t token) describe() string {
	switch t.kind {
	case tokenIdent:
		return t.text
	case tokenString:
		return `"` + t.text + `"`
	case tokenLeftParen:
		return "("
	case tokenRightParen:
		return ")"
	case tokenComma:
		return ","
	case tokenEquals:
		return "="
	default:
		if strings.TrimSpace(t.text) == "" {
			return "invalid token"
		}
		return t.text
	}
}
