// Package envfile builds the merged variable map used for
// template resolution: a local declarations file layered
// over the ambient process environment.
//
// The declarations file is UTF-8 and line-oriented (LF or
// CRLF). Blank lines and lines whose first non-space
// character is '#' are ignored. Every other line must hold
// exactly one name=value declaration; quoting, escapes and
// optional "export " prefixes follow joho/godotenv rules.
// Declaring the same name twice is an error, never an
// override. A missing file is not an error.
//
// Names from the ambient environment are added only when
// absent from the file: the file always wins.
package envfile
