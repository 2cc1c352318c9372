// Package lingua builds a Malayalam word and definition dataset from
// the Malayalam Wiktionary. It discovers the per-letter index sections,
// walks each section's paginated word list with resumable checkpoints,
// stores word URLs in a relational store, scrapes definitions, and
// supports a manual review pass for words the scraper could not parse.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, htmlquery/).
package lingua
