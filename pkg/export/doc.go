// Package export converts compiled JADN schemas into JSON Schema documents
// and OpenAPI component schemas.
//
// Option strings are read with the canonical decode tables from package
// options. Schemas compiled with the compatibility encoder store patterns and
// field links with tags those tables do not know; such entries are reported
// through the configured diag.Reporter and left out of the export.
package export
