// Package script evaluates dialogue conditions, applies dialogue actions and
// tokenizes the small CEL-like script language used by both.
package script
