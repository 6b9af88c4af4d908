package dto

import "github.com/yukikurage/project-management-api/internal/services"

// AddMemberRequest names the user to add to a project
type AddMemberRequest struct {
	MemberID uint64 `json:"memberid" binding:"required"`
}

// MemberDTO is a project participant. The owner is flagged.
type MemberDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	IsOwner  bool   `json:"isOwner,omitempty"`
}

func ToMemberDTOs(participants []services.Participant) []MemberDTO {
	dtos := make([]MemberDTO, len(participants))
	for i, p := range participants {
		dtos[i] = MemberDTO{ID: p.ID, Username: p.Username, IsOwner: p.IsOwner}
	}
	return dtos
}
