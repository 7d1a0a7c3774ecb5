// SPDX-License-Identifier: MPL-2.0

// Package platform implements the target-platform predicate syntax used by
// platform-scoped dependency tables: either a literal target triple name
// such as "x86_64-unknown-linux-gnu", or a cfg expression such as
// `cfg(all(unix, target_pointer_width = "64"))`.
package platform

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPredicate is the sentinel error wrapped by all predicate
	// parse failures.
	ErrInvalidPredicate = errors.New("invalid platform predicate")
)

type (
	// Predicate is a parsed platform predicate. It is a closed variant: a
	// plain triple name, or a cfg expression.
	Predicate struct {
		name string
		cfg  Expr
	}

	// Expr is one node of a cfg expression tree.
	Expr interface {
		// String renders the node in cfg syntax.
		String() string

		// Matches evaluates the node against a set of active cfg options.
		// Plain idents are present as keys with an empty value slice;
		// key/value pairs are present as key -> values.
		Matches(opts map[string][]string) bool
	}

	// ExprAll is `all(...)`: every child must match.
	ExprAll []Expr

	// ExprAny is `any(...)`: at least one child must match.
	ExprAny []Expr

	// ExprNot is `not(...)`: exactly one child that must not match.
	ExprNot struct {
		Inner Expr
	}

	// ExprOption is a leaf: a bare ident like `unix`, or a `key = "value"`
	// pair like `target_os = "linux"`.
	ExprOption struct {
		Key   string
		Value string // empty for bare idents
		pair  bool
	}
)

// Parse parses a platform predicate string. Anything that does not start
// with "cfg(" is treated as a literal triple name; cfg expressions are
// parsed and validated.
func Parse(s string) (Predicate, error) {
	if !strings.HasPrefix(s, "cfg(") {
		if strings.TrimSpace(s) == "" {
			return Predicate{}, fmt.Errorf("%w: empty string", ErrInvalidPredicate)
		}
		return Predicate{name: s}, nil
	}
	if !strings.HasSuffix(s, ")") {
		return Predicate{}, fmt.Errorf("%w: failed to parse `%s`: missing closing `)`", ErrInvalidPredicate, s)
	}

	inner := s[len("cfg(") : len(s)-1]
	p := &parser{tokens: lex(inner)}
	expr, err := p.expr()
	if err != nil {
		return Predicate{}, fmt.Errorf("%w: failed to parse `%s`: %v", ErrInvalidPredicate, s, err)
	}
	if !p.done() {
		return Predicate{}, fmt.Errorf("%w: unexpected content after cfg expression in `%s`", ErrInvalidPredicate, s)
	}
	return Predicate{cfg: expr}, nil
}

// MustParse is Parse for compiled-in predicates; it panics on error.
func MustParse(s string) Predicate {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// IsCfg reports whether the predicate is a cfg expression rather than a
// literal triple name.
func (p Predicate) IsCfg() bool {
	return p.cfg != nil
}

// String renders the predicate as written in a manifest target table key.
func (p Predicate) String() string {
	if p.cfg != nil {
		return "cfg(" + p.cfg.String() + ")"
	}
	return p.name
}

// MatchesTriple evaluates the predicate against a target triple and its
// active cfg options. Literal predicates compare against the triple name;
// cfg predicates evaluate their expression.
func (p Predicate) MatchesTriple(triple string, opts map[string][]string) bool {
	if p.cfg != nil {
		return p.cfg.Matches(opts)
	}
	return p.name == triple
}

func (e ExprAll) String() string {
	return "all(" + joinExprs(e) + ")"
}

func (e ExprAll) Matches(opts map[string][]string) bool {
	for _, child := range e {
		if !child.Matches(opts) {
			return false
		}
	}
	return true
}

func (e ExprAny) String() string {
	return "any(" + joinExprs(e) + ")"
}

func (e ExprAny) Matches(opts map[string][]string) bool {
	for _, child := range e {
		if child.Matches(opts) {
			return true
		}
	}
	return false
}

func (e ExprNot) String() string {
	return "not(" + e.Inner.String() + ")"
}

func (e ExprNot) Matches(opts map[string][]string) bool {
	return !e.Inner.Matches(opts)
}

func (e ExprOption) String() string {
	if e.pair {
		return fmt.Sprintf("%s = %q", e.Key, e.Value)
	}
	return e.Key
}

func (e ExprOption) Matches(opts map[string][]string) bool {
	values, ok := opts[e.Key]
	if !ok {
		return false
	}
	if !e.pair {
		return true
	}
	for _, v := range values {
		if v == e.Value {
			return true
		}
	}
	return false
}

func joinExprs[T Expr](exprs []T) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}
