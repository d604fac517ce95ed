// Package shipdesk tracks vessel operations at a vehicle terminal: ship
// metadata, team assignments, cargo targets, progress and dashboard widgets.
// Operations can be pre-filled from uploaded PDF, CSV or text documents by a
// pattern-based field extraction engine.
//
// This package contains domain types and interfaces only. Implementations
// live in subdirectories named after their primary dependency (e.g. sqlite/,
// pdf/, charmap/) or after the concern they provide (extract/, http/).
package shipdesk
