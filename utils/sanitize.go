package utils

import "strings"

var headerFilenameCleaner = strings.NewReplacer(
	"\r", "",
	"\n", "",
	"\"", "",
	"/", "_",
	"\\", "_",
)

// SanitizeHeaderFilename makes a user-supplied filename safe to embed in a
// Content-Disposition header. Path separators become underscores so the
// original name never looks like a path on the client side.
func SanitizeHeaderFilename(name string) string {
	clean := headerFilenameCleaner.Replace(strings.TrimSpace(name))
	if clean == "" {
		return "download"
	}
	return clean
}
