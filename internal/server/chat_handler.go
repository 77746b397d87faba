package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jobfinder/job-assistant/internal/chat"
)

var validate = validator.New()

// chatRequest is the POST /chat request body.
type chatRequest struct {
	Message      string     `json:"message" validate:"required,max=2000"`
	History      []chatTurn `json:"history" validate:"max=50,dive"`
	CurrentJobID *int64     `json:"current_job_id" validate:"omitempty,min=1"`
	TopK         int        `json:"top_k" validate:"omitempty,min=1,max=50"`
}

type chatTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"max=4000"`
}

// handleChat runs one conversational turn.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	history := make([]chat.Turn, 0, len(req.History))
	for _, t := range req.History {
		history = append(history, chat.Turn{Role: t.Role, Content: t.Content})
	}

	resp := s.chat.Chat(r.Context(), chat.Request{
		Message:      req.Message,
		History:      history,
		CurrentJobID: req.CurrentJobID,
		TopK:         req.TopK,
	})

	s.jsonResponse(w, http.StatusOK, resp)
}

// validationMessage flattens validator errors into a single client-facing
// message.
func validationMessage(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		switch fe.Tag() {
		case "required":
			return fe.Field() + " is required"
		case "max":
			return fe.Field() + " is too long"
		case "min":
			return fe.Field() + " is too small"
		case "oneof":
			return fe.Field() + " must be one of: " + fe.Param()
		}
		return fe.Field() + " is invalid"
	}
	return "invalid request"
}
