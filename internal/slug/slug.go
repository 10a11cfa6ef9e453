package slug

import "strings"

// Make turns a product name into a URL slug: lowercase, with every run
// of non-alphanumeric characters collapsed into a single hyphen.
// Make("Garden Chair (Oak)") == "garden-chair-oak".
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
