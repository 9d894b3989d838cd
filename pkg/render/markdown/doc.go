// Package markdown renders a compiled JADN schema as Markdown property tables:
// a header built from the schema metadata, a table of primitive types, one
// table per Enumerated vocabulary, and one table per structure type.
//
// Descriptions are sanitised with a strict HTML policy before they are placed
// into table cells, so schema text cannot inject markup into rendered docs.
package markdown
