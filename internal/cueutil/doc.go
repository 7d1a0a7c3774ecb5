// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides the CUE schema-validation flow used by the
// configuration layer: compile an embedded schema, unify it with user
// input, validate, and decode into a Go value. Errors carry the JSON
// path of the offending field so users can locate problems in their
// config files directly.
package cueutil
