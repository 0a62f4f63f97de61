package types

import "strings"

// Page identifies the page a script runs on. Namespace is the localized
// namespace prefix without the colon and is empty for the main namespace.
type Page struct {
	Namespace string `json:"namespace,omitempty"`
	Title     string `json:"title"`
}

// ParsePage splits "Namespace:Title" at the first colon. The namespace part
// is only recognized when it is listed in namespaces (matched exactly after
// underscores become spaces); otherwise the whole string is the title.
func ParsePage(text string, namespaces ...string) Page {
	text = strings.TrimSpace(text)
	if ns, title, ok := strings.Cut(text, ":"); ok {
		ns = strings.TrimSpace(TitleText(ns))
		for _, known := range namespaces {
			if ns == TitleText(known) {
				return Page{Namespace: ns, Title: strings.TrimSpace(TitleText(title))}
			}
		}
	}
	return Page{Title: TitleText(text)}
}

// PrefixedText returns the full page name in title form, e.g. "Help:Some page".
func (p Page) PrefixedText() string {
	title := TitleText(p.Title)
	if p.Namespace == "" {
		return title
	}
	return TitleText(p.Namespace) + ":" + title
}

// DBKey returns the full page name in DbKey form, e.g. "Help:Some_page".
func (p Page) DBKey() string {
	return DBKey(p.PrefixedText())
}

// IsZero reports whether the page has no title.
func (p Page) IsZero() bool {
	return strings.TrimSpace(p.Title) == ""
}

// Subject is the entity property values are stored for: a page, or a
// subobject of a page when Subobject is set.
type Subject struct {
	Page      Page   `json:"page"`
	Subobject string `json:"subobject,omitempty"`
}

// String renders the subject as "Page_key" or "Page_key#subobject".
func (s Subject) String() string {
	if s.Subobject == "" {
		return s.Page.DBKey()
	}
	return s.Page.DBKey() + "#" + s.Subobject
}

// Subobject is a named or hash-identified sub-entity of a page together with
// its value assignments.
type Subobject struct {
	Page        Page        `json:"page"`
	ID          string      `json:"id"`
	Assignments Assignments `json:"assignments"`
}

// Subject returns the storage subject of the subobject.
func (s Subobject) Subject() Subject {
	return Subject{Page: s.Page, Subobject: s.ID}
}
