// file: internals/helpers/sanitize.go
package helper

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// programPolicy allows the formatting tags electoral programs are written
// with and nothing else. Scripts, event handlers and styles are stripped.
var programPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "b", "strong", "i", "em", "u", "ul", "ol", "li", "h3", "h4")
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	return p
}()

// SanitizeProgramHTML cleans free-text program/info HTML before storage.
func SanitizeProgramHTML(raw string) string {
	return strings.TrimSpace(programPolicy.Sanitize(raw))
}
