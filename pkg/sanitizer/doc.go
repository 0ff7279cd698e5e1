// Package sanitizer normalizes free-text input such as hotel names and search
// terms before it reaches validation or storage.
//
// All functions are idempotent: applying them twice gives the same result as
// applying them once. Invalid input degrades to an empty string rather than
// an error.
package sanitizer
