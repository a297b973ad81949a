package servicelog

import "care-hub-go/internal/domain/directory"

// VisibleTo keeps the entries viewer may read. Leaders see their own entries
// and those recorded by their volunteers.
func VisibleTo(viewer directory.User, entries []Entry, users []directory.User) []Entry {
	result := make([]Entry, 0)

	switch viewer.Role {
	case directory.RoleAdmin:
		return append(result, entries...)
	case directory.RoleLeader:
		team := make(map[string]bool)
		for _, user := range users {
			if user.ReportsTo(viewer.ID) {
				team[user.ID] = true
			}
		}
		for _, entry := range entries {
			if entry.VolunteerID == viewer.ID || team[entry.VolunteerID] {
				result = append(result, entry)
			}
		}
	case directory.RoleVolunteer:
		for _, entry := range entries {
			if entry.VolunteerID == viewer.ID {
				result = append(result, entry)
			}
		}
	}

	return result
}
