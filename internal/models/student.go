package models

// Student is a roster entry belonging to exactly one section.
type Student struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SectionID string `json:"sectionId"`
}

// Section is a named class group.
type Section struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FindSection returns the section with the given id.
func FindSection(sections []Section, id string) (Section, bool) {
	for _, section := range sections {
		if section.ID == id {
			return section, true
		}
	}
	return Section{}, false
}
