// Package templify turns static HTML documents into parameterized templates.
// Visible text and asset references are replaced with {{ name }} placeholders,
// the original values are kept in variable groups, and a renderer expands the
// template again from one or more groups.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, yaml/, fsnotify/).
package templify
