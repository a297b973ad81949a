package care

import "care-hub-go/internal/domain/directory"

// VisibleTo filters beneficiaries for viewer without changing their order.
//
//   - admin: everything
//   - leader: assigned to the leader, or to a volunteer on the leader's team
//   - volunteer: assigned to the volunteer
//   - anything else: nothing
func VisibleTo(viewer directory.User, beneficiaries []Beneficiary, users []directory.User) []Beneficiary {
	result := make([]Beneficiary, 0)

	switch viewer.Role {
	case directory.RoleAdmin:
		return append(result, beneficiaries...)
	case directory.RoleLeader:
		team := teamOf(viewer.ID, users)
		for _, b := range beneficiaries {
			if b.AssignedVolunteerID == "" {
				continue
			}
			if b.AssignedVolunteerID == viewer.ID || team[b.AssignedVolunteerID] {
				result = append(result, b)
			}
		}
	case directory.RoleVolunteer:
		for _, b := range beneficiaries {
			if b.AssignedVolunteerID != "" && b.AssignedVolunteerID == viewer.ID {
				result = append(result, b)
			}
		}
	}

	return result
}

func teamOf(leaderID string, users []directory.User) map[string]bool {
	team := make(map[string]bool)
	for _, user := range users {
		if user.ReportsTo(leaderID) {
			team[user.ID] = true
		}
	}
	return team
}

func canManage(actor directory.User) bool {
	switch actor.Role {
	case directory.RoleAdmin, directory.RoleLeader:
		return true
	default:
		return false
	}
}
