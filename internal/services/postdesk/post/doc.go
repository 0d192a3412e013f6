// Package post defines the post record read from the content store, its
// closed enumerations, and the display state derived from it.
package post
