// Package options converts JADN type and field options between their typed
// map form and the compact wire form: a list of strings whose first character
// is the option tag and whose remainder is the value payload.
//
// Each context (type or field) is described by a Table of Descriptors. A
// descriptor's Kind drives both the coercion used by Decode and the inverse
// formatting used by Format, so those two directions always agree. Encode keeps
// the historical inverse table used when compiling JAS sources; it is narrower
// than the decode tables and reports every key it cannot express.
package options
