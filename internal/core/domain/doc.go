// Package domain contains the core business entities for Inkwell:
// document references, rewrite conversations, edit-session lifecycle states,
// and the shared error taxonomy. It has no dependencies on infrastructure.
package domain
