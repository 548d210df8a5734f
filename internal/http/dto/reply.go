package dto

import "respondo.app/backend/internal/model"

// Fields are pointers so a missing field fails `required` while an empty string passes.
type MessageRequest struct {
	Author    *string `json:"author" binding:"required"`
	Timestamp *string `json:"timestamp" binding:"required"`
	Content   *string `json:"content" binding:"required"`
}

type DialogRequest struct {
	Messages []MessageRequest `json:"messages" binding:"required,dive"`
	Context  *string          `json:"context,omitempty"`
}

func (r DialogRequest) ToModel() model.DialogRequest {
	messages := make([]model.Message, len(r.Messages))
	for i, m := range r.Messages {
		messages[i] = model.Message{
			Author:    *m.Author,
			Timestamp: *m.Timestamp,
			Content:   *m.Content,
		}
	}

	req := model.DialogRequest{Messages: messages}
	if r.Context != nil {
		req.Context = *r.Context
	}
	return req
}

type SuggestReplyResponse struct {
	SuggestedReply string  `json:"suggested_reply"`
	ProcessingTime float64 `json:"processing_time"`
}

// TestDialogResponse is returned by the diagnostic endpoint.
type TestDialogResponse struct {
	FormattedDialog  string `json:"formatted_dialog"`
	TemporalAnalysis string `json:"temporal_analysis"`
	MessageCount     int    `json:"message_count"`
	PromptLength     int    `json:"prompt_length"`
	TestReply        string `json:"test_reply"`
}
