package model

// Chore is a single rotating task. Identity is the ID; Name is what gets
// rendered and sent in notifications.
type Chore struct {
	ID   string
	Name string
}

// Group is an independently rotating set of chores and people. The order of
// both slices is significant: a chore's index and a person's index together
// determine the assignment for a given week offset.
type Group struct {
	ID     string
	Name   string
	Chores []Chore
	People []string
}

// ChoreByID returns the chore with the given ID, if the group has one.
func (g Group) ChoreByID(id string) (Chore, bool) {
	for _, c := range g.Chores {
		if c.ID == id {
			return c, true
		}
	}
	return Chore{}, false
}

// ChoreIDs returns the group's chore IDs in rotation order.
func (g Group) ChoreIDs() []string {
	ids := make([]string, len(g.Chores))
	for i, c := range g.Chores {
		ids[i] = c.ID
	}
	return ids
}

// GroupAssignment is one group's chore→person mapping for a single week.
type GroupAssignment struct {
	GroupID string
	Chores  map[string]string // chore ID → person
}
