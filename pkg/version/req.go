// SPDX-License-Identifier: MPL-2.0

package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Req is a version requirement: a conjunction of comparators that a version
// must all satisfy. The zero value matches nothing; use Any for the
// unconstrained requirement.
type Req struct {
	comparators []comparator
	any         bool
}

// comparator is one operator applied to a possibly-partial version.
// Nil minor/patch mean the component was not written (e.g. "~1.2" or ">=1").
type comparator struct {
	op         string
	major      int
	minor      *int
	patch      *int
	prerelease string
}

// comparatorRegex matches a single requirement comparator: an optional
// operator followed by a possibly-partial version, where minor or patch may
// be a `*` wildcard.
var comparatorRegex = regexp.MustCompile(`^(\^|~|>=|<=|>|<|=)?\s*v?(\d+|\*)(?:\.(\d+|\*))?(?:\.(\d+|\*))?(?:-([0-9A-Za-z\-\.]+))?(?:\+[0-9A-Za-z\-\.]+)?$`)

// Any returns the requirement that matches every version (`*`).
func Any() Req {
	return Req{any: true}
}

// Exact returns the requirement matching exactly v (`=x.y.z`).
func Exact(v Version) Req {
	minor, patch := v.Minor, v.Patch
	return Req{comparators: []comparator{{
		op:         "=",
		major:      v.Major,
		minor:      &minor,
		patch:      &patch,
		prerelease: v.Prerelease,
	}}}
}

// ParseReq parses a version requirement string. A bare version defaults to
// the caret operator; `*` and trailing-wildcard forms like `1.*` are
// accepted; several comparators may be joined with commas.
func ParseReq(s string) (Req, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return Any(), nil
	}

	var comparators []comparator
	for _, piece := range strings.Split(s, ",") {
		piece = strings.TrimSpace(piece)
		c, err := parseComparator(piece)
		if err != nil {
			return Req{}, fmt.Errorf("the given version requirement is invalid: %w", err)
		}
		comparators = append(comparators, c)
	}
	return Req{comparators: comparators}, nil
}

func parseComparator(s string) (comparator, error) {
	matches := comparatorRegex.FindStringSubmatch(s)
	if matches == nil {
		return comparator{}, fmt.Errorf("cannot parse '%s' as a comparator", s)
	}

	op := matches[1]
	major, minor, patch := matches[2], matches[3], matches[4]

	// `1.*` and `1.2.*` are shorthand for the tilde-style range on the
	// written components. A wildcard in the major slot needs no comparator
	// at all and is handled by the caller as Any.
	wildcard := minor == "*" || patch == "*"
	if major == "*" {
		return comparator{}, fmt.Errorf("cannot parse '%s' as a comparator", s)
	}
	if wildcard {
		if op != "" {
			return comparator{}, fmt.Errorf("operators are not allowed on wildcard requirements: '%s'", s)
		}
		if minor == "*" && patch != "" && patch != "*" {
			return comparator{}, fmt.Errorf("cannot parse '%s' as a comparator", s)
		}
	}

	c := comparator{op: op, prerelease: matches[5]}
	if c.op == "" {
		// A bare version requirement is caret semantics.
		c.op = "^"
	}

	var err error
	c.major, err = strconv.Atoi(major)
	if err != nil {
		return comparator{}, fmt.Errorf("invalid major version in '%s'", s)
	}
	if minor != "" && minor != "*" {
		n, err := strconv.Atoi(minor)
		if err != nil {
			return comparator{}, fmt.Errorf("invalid minor version in '%s'", s)
		}
		c.minor = &n
	}
	if patch != "" && patch != "*" {
		n, err := strconv.Atoi(patch)
		if err != nil {
			return comparator{}, fmt.Errorf("invalid patch version in '%s'", s)
		}
		c.patch = &n
	}

	if wildcard {
		// `1.*` behaves like `~1`, `1.2.*` like `~1.2`.
		c.op = "~"
	}
	return c, nil
}

// IsAny reports whether the requirement matches every version.
func (r Req) IsAny() bool {
	return r.any
}

// Matches reports whether v satisfies every comparator of the requirement.
func (r Req) Matches(v Version) bool {
	if r.any {
		return true
	}
	if len(r.comparators) == 0 {
		return false
	}
	for _, c := range r.comparators {
		if !c.matches(v) {
			return false
		}
	}
	return true
}

// String renders the requirement in the form it would be written in a
// manifest.
func (r Req) String() string {
	if r.any {
		return "*"
	}
	parts := make([]string, 0, len(r.comparators))
	for _, c := range r.comparators {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, ", ")
}

func (c comparator) String() string {
	s := c.op + strconv.Itoa(c.major)
	if c.minor != nil {
		s += "." + strconv.Itoa(*c.minor)
	}
	if c.patch != nil {
		s += "." + strconv.Itoa(*c.patch)
	}
	if c.prerelease != "" {
		s += "-" + c.prerelease
	}
	return s
}

// lower returns the comparator's version with unwritten components zeroed,
// the lower bound of every range operator.
func (c comparator) lower() Version {
	v := Version{Major: c.major, Prerelease: c.prerelease}
	if c.minor != nil {
		v.Minor = *c.minor
	}
	if c.patch != nil {
		v.Patch = *c.patch
	}
	return v
}

func (c comparator) matches(v Version) bool {
	low := c.lower()

	switch c.op {
	case "=":
		if v.Major != c.major {
			return false
		}
		if c.minor != nil && v.Minor != *c.minor {
			return false
		}
		if c.patch != nil && v.Patch != *c.patch {
			return false
		}
		return v.Prerelease == c.prerelease

	case ">":
		return v.Compare(low) > 0

	case ">=":
		return v.Compare(low) >= 0

	case "<":
		return v.Compare(low) < 0

	case "<=":
		return v.Compare(low) <= 0

	case "~":
		// Patch-level flexibility on the written components:
		// ~1.2.3 := >=1.2.3 <1.3.0, ~1.2 := >=1.2.0 <1.3.0, ~1 := >=1.0.0 <2.0.0.
		if v.Compare(low) < 0 {
			return false
		}
		if v.Major != c.major {
			return false
		}
		if c.minor != nil && v.Minor != *c.minor {
			return false
		}
		return true

	case "^":
		// Compatibility with the left-most non-zero component:
		// ^1.2.3 := >=1.2.3 <2.0.0, ^0.2.3 := >=0.2.3 <0.3.0,
		// ^0.0.3 := >=0.0.3 <0.0.4.
		if v.Compare(low) < 0 {
			return false
		}
		if c.major != 0 {
			return v.Major == c.major
		}
		if c.minor == nil {
			// ^0 := <1.0.0
			return v.Major == 0
		}
		if *c.minor != 0 {
			return v.Major == 0 && v.Minor == *c.minor
		}
		if c.patch == nil {
			// ^0.0 := <0.1.0
			return v.Major == 0 && v.Minor == 0
		}
		return v.Major == 0 && v.Minor == 0 && v.Patch == *c.patch

	default:
		return false
	}
}
