// SPDX-License-Identifier: MPL-2.0

// Package manifest interprets Cargo.toml documents into a validated,
// canonical package description.
//
// Interpretation is a two-stage pipeline: the TOML document is first decoded
// into a permissive intermediate structure where every section and field is
// optional and unknown keys are collected rather than rejected, and then a
// validating transformation turns that structure into the strict model:
// inferring missing build targets from the directory layout, resolving
// dependency declarations to canonical source identities, merging profile
// overrides over compiled-in defaults and resolving workspace membership.
//
// A document with no package section at all is interpreted as a workspace
// root ("virtual manifest") carrying only a replacement table, workspace
// configuration and profiles.
//
// Failures come in exactly two severities: hard errors abort interpretation
// and surface a single message, while warnings accumulate on the result and
// never affect success.
package manifest
