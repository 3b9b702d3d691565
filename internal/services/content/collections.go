package content

import "regexp"

// Collections the admin UI manages. Writes outside this set are rejected
// unless the store runs in open mode, so an authenticated caller cannot
// mint arbitrary persistent namespaces.
var knownCollections = map[string]struct{}{
	"profile":      {},
	"skills":       {},
	"experience":   {},
	"leadership":   {},
	"certificates": {},
	"socialLinks":  {},
	"messages":     {},
	"cv":           {},
}

// collection names are short and alphabetic either way; this guards the
// open mode against path garbage becoming collection names.
var reCollectionName = regexp.MustCompile(`^[a-zA-Z]{1,64}$`)

// KnownCollections returns the allow-listed collection names.
func KnownCollections() []string {
	names := make([]string, 0, len(knownCollections))
	for name := range knownCollections {
		names = append(names, name)
	}
	return names
}

// validCollection reports whether name is usable given the open-mode setting.
func validCollection(name string, open bool) bool {
	if !reCollectionName.MatchString(name) {
		return false
	}
	if open {
		return true
	}
	_, ok := knownCollections[name]
	return ok
}
