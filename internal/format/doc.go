// Package format turns report values into short display strings.
//
// The helpers here are shared by the table renderer and the progress
// display: paths relative to the working directory, compact relative
// times ("5m ago", "yesterday", "2026-01-24") and single-line error
// summaries.
package format
