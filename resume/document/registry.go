package document

// knownSections is the ordered set of resume blocks the builder understands.
// Layout defaults split this list in order, so reordering it changes every
// newly created resume.
var knownSections = [...]string{
	"header",
	"summary",
	"experience",
	"education",
	"skills",
	"projects",
	"certifications",
	"languages",
	"awards",
	"publications",
	"volunteering",
	"courses",
	"interests",
	"references",
	"achievements",
	"strengths",
	"organizations",
	"links",
	"hobbies",
	"custom",
}

var sectionIndex = func() map[string]int {
	idx := make(map[string]int, len(knownSections))
	for i, s := range knownSections {
		idx[s] = i
	}
	return idx
}()

// Sections returns the known section identifiers in registry order.
// The returned slice is a copy and may be modified by the caller.
func Sections() []string {
	out := make([]string, len(knownSections))
	copy(out, knownSections[:])
	return out
}

// IsKnownSection reports whether id is a registry section.
func IsKnownSection(id string) bool {
	_, ok := sectionIndex[id]
	return ok
}
