package workflow

import (
	"sort"

	"care-hub-go/internal/domain/directory"
)

// CanSubmit reports whether the user may file requests. Admins never do.
func CanSubmit(user directory.User) bool {
	switch user.Role {
	case directory.RoleLeader, directory.RoleVolunteer:
		return true
	default:
		return false
	}
}

// CanApprove decides whether approver may decide request filed by applicant.
// Leaders decide for their direct reports, admins decide for leaders only.
func CanApprove(approver directory.User, request Request, applicant *directory.User) bool {
	if request.Status != StatusPending || applicant == nil {
		return false
	}
	if applicant.ID != request.ApplicantID || applicant.ID == approver.ID {
		return false
	}

	switch approver.Role {
	case directory.RoleLeader:
		return applicant.ReportsTo(approver.ID)
	case directory.RoleAdmin:
		return applicant.Role == directory.RoleLeader
	default:
		return false
	}
}

// VisibleTo filters requests for viewer and moves pending ones to the front,
// keeping the input order within each group.
func VisibleTo(viewer directory.User, requests []Request, users []directory.User) []Request {
	byID := make(map[string]directory.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}

	result := make([]Request, 0)
	for _, request := range requests {
		if canSee(viewer, request, byID) {
			result = append(result, request)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Status == StatusPending && result[j].Status != StatusPending
	})
	return result
}

func canSee(viewer directory.User, request Request, users map[string]directory.User) bool {
	switch viewer.Role {
	case directory.RoleAdmin:
		return true
	case directory.RoleLeader:
		if request.ApplicantID == viewer.ID {
			return true
		}
		applicant, ok := users[request.ApplicantID]
		return ok && applicant.LeaderID == viewer.ID
	case directory.RoleVolunteer:
		return request.ApplicantID == viewer.ID
	default:
		return false
	}
}
