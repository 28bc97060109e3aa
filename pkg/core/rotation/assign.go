package rotation

import "errors"

// ErrNoPeople is returned by Assign when the people list is empty.
var ErrNoPeople = errors.New("rotation: no people to assign chores to")

// Assign maps each chore ID to a person for the given week offset. The chore
// at position i goes to people[(i+offset) % len(people)], so bumping the
// offset by one advances every chore to the next person in the cycle.
//
// Chore IDs are expected to be unique; if a duplicate slips through, the
// later position wins. The inputs are never modified and identical inputs
// always produce an identical mapping.
func Assign(offset int, choreIDs []string, people []string) (map[string]string, error) {
	if len(people) == 0 {
		return nil, ErrNoPeople
	}

	assignments := make(map[string]string, len(choreIDs))
	for i, choreID := range choreIDs {
		assignments[choreID] = people[(i+offset)%len(people)]
	}
	return assignments, nil
}
