// Package site serves the static Farmer Genius website.
//
// Requests for existing files get the file with a content type taken from
// its extension. Anything else that stays inside the root, including
// directories, gets the index document as text/html so client-side routes
// work on reload. Paths containing ".." are refused with 403 before any
// cleaning.
package site
