// Package rules matches a newly adopted window's class/title against an
// ordered list of placement rules, per spec.md §4.4.
package rules

// Rule is one placement override, installed by the `rule` command. Class is
// required and matched by exact equality; Title, when non-empty, narrows
// the match further. Workspace, Monitor, and Float are pointers so "not
// specified" is distinguishable from the override's zero value.
type Rule struct {
	Class string
	Title string

	Workspace *int
	Monitor   *int
	Float     *bool

	// Area is the relative placement token (spec.md §3's Rule definition)
	// applied when the window ends up floating: "center" (default),
	// "top-left", "top-right", "bottom-left", "bottom-right", "top",
	// "bottom", "left", "right". Empty means unspecified, distinct from
	// "center" so a spawn hint doesn't clobber a rule's own Area.
	Area string
}

// Matcher holds the order-preserving rule list spec.md §3 describes:
// "first match wins."
type Matcher struct {
	rules []Rule
}

// New returns an empty Matcher.
func New() *Matcher {
	return &Matcher{}
}

// Add appends a rule to the end of the list.
func (m *Matcher) Add(r Rule) {
	m.rules = append(m.rules, r)
}

// Reset clears the rule list, used by the configuration pipeline's
// reset-before-replay policy on reload.
func (m *Matcher) Reset() {
	m.rules = nil
}

// Len reports the number of installed rules.
func (m *Matcher) Len() int { return len(m.rules) }

// Match returns the first rule whose Class equals class and, if Title is
// set, whose Title also equals title. A window with an empty class or
// title can never match a rule that specifies that field — spec.md §8's
// boundary case for windows with no class/title.
func (m *Matcher) Match(class, title string) (Rule, bool) {
	for _, r := range m.rules {
		if r.Class == "" || r.Class != class {
			continue
		}
		if r.Title != "" && r.Title != title {
			continue
		}
		return r, true
	}
	return Rule{}, false
}
