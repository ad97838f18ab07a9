package models

// EntitySet holds the names extracted from an answer, grouped the way the
// NER model labels them. Only PER, ORG and MISC groups are screened.
type EntitySet struct {
	Persons       []string `json:"persons"`
	Organizations []string `json:"organizations"`
	Misc          []string `json:"misc"`
}

// All returns every name in screening order: persons, organizations, misc.
func (e EntitySet) All() []string {
	out := make([]string, 0, len(e.Persons)+len(e.Organizations)+len(e.Misc))
	out = append(out, e.Persons...)
	out = append(out, e.Organizations...)
	out = append(out, e.Misc...)
	return out
}

// Empty reports whether no entity of any group was extracted.
func (e EntitySet) Empty() bool {
	return len(e.Persons) == 0 && len(e.Organizations) == 0 && len(e.Misc) == 0
}
