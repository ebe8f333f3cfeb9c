package responses

import (
	"swipehub/session-api/internal/domain/session"
)

// CreateSessionResponse is returned to a session creator
type CreateSessionResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
}

// BuildCreateSessionResponse creates response from domain result
func BuildCreateSessionResponse(result *session.CreateResult) *CreateSessionResponse {
	return &CreateSessionResponse{
		Token:     result.Token,
		SessionID: result.SessionID,
		UserID:    result.UserID,
	}
}

// JoinSessionResponse is returned to a joining member
type JoinSessionResponse struct {
	Token     string `json:"token"`
	IsCreator bool   `json:"isCreator"`
}

// BuildJoinSessionResponse creates response from domain result
func BuildJoinSessionResponse(result *session.JoinResult) *JoinSessionResponse {
	return &JoinSessionResponse{
		Token:     result.Token,
		IsCreator: result.IsCreator,
	}
}
