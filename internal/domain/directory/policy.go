package directory

import (
	"fmt"
	"sort"
	"strconv"
)

// NextUsernameFrom returns the highest numeric username plus one, zero padded
// to five digits. Usernames that are not integers are ignored.
func NextUsernameFrom(users []User) string {
	highest := 0
	for _, user := range users {
		n, err := strconv.Atoi(user.Username)
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%0*d", usernameDigits, highest+1)
}

// CountTeam counts volunteers reporting to leaderID, skipping excludeUserID.
func CountTeam(users []User, leaderID, excludeUserID string) int {
	count := 0
	for _, user := range users {
		if user.ID == excludeUserID {
			continue
		}
		if user.ReportsTo(leaderID) {
			count++
		}
	}
	return count
}

// VisibleTo filters the user list down to what viewer may see. Admins see
// everyone, leaders see themselves and their team, volunteers see themselves
// and their leader.
func VisibleTo(viewer User, users []User) []User {
	result := make([]User, 0)
	for _, user := range users {
		if canSeeUser(viewer, user) {
			result = append(result, user)
		}
	}
	return result
}

func canSeeUser(viewer, user User) bool {
	switch viewer.Role {
	case RoleAdmin:
		return true
	case RoleLeader:
		return user.ID == viewer.ID || user.ReportsTo(viewer.ID)
	case RoleVolunteer:
		return user.ID == viewer.ID || (viewer.LeaderID != "" && user.ID == viewer.LeaderID)
	default:
		return false
	}
}

func BuildOrgChart(users []User) OrgChart {
	chart := OrgChart{
		Admins:     []User{},
		Teams:      []TeamSummary{},
		Unassigned: []User{},
	}

	leaders := make(map[string]bool)
	for _, user := range users {
		if user.Role == RoleLeader {
			leaders[user.ID] = true
		}
	}

	for _, user := range users {
		switch user.Role {
		case RoleAdmin:
			chart.Admins = append(chart.Admins, user)
		case RoleLeader:
			members := make([]User, 0)
			for _, member := range users {
				if member.ReportsTo(user.ID) {
					members = append(members, member)
				}
			}
			chart.Teams = append(chart.Teams, TeamSummary{
				Leader:  user,
				Members: members,
				Size:    len(members),
				Full:    len(members) >= MaxTeamSize,
			})
		case RoleVolunteer:
			if user.LeaderID == "" || !leaders[user.LeaderID] {
				chart.Unassigned = append(chart.Unassigned, user)
			}
		}
	}

	sort.SliceStable(chart.Teams, func(i, j int) bool {
		return chart.Teams[i].Leader.Username < chart.Teams[j].Leader.Username
	})
	return chart
}
