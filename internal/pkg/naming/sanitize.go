package naming

import (
	"strings"

	"github.com/umisama/go-regexpcache"
)

// Placeholder replaces each forbidden character.
const Placeholder = "_"

// forbiddenChars is the union of characters forbidden in a file name on Windows and POSIX systems,
// so the exported tree can be copied between systems.
const forbiddenChars = `[<>:"/\\|?*\x00-\x1f]`

// Sanitize converts the name to a valid path segment.
// Each forbidden character is replaced by the Placeholder, the length and the case are preserved.
// A name consisting only of dots is replaced, so it cannot refer to the current or the parent directory.
func Sanitize(name string) string {
	out := regexpcache.MustCompile(forbiddenChars).ReplaceAllString(name, Placeholder)
	if out != "" && strings.Trim(out, ".") == "" {
		out = strings.Repeat(Placeholder, len(out))
	}
	return out
}

// SanitizePath sanitizes each segment of the slash separated path, empty segments are removed.
func SanitizePath(path string) string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		segments = append(segments, Sanitize(segment))
	}
	return strings.Join(segments, "/")
}

// segment returns the sanitized name usable as a path segment, the empty name is replaced by the Placeholder.
func segment(name string) string {
	if name == "" {
		return Placeholder
	}
	return Sanitize(name)
}
