// Package resources serves the UI's static assets.
//
// Builds with the dev tag read files from disk so stylesheet edits show up
// on reload; other builds embed them.
package resources

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// StaticPath returns the URL path for a static asset.
func StaticPath(path string) string {
	return "/static/" + path
}
