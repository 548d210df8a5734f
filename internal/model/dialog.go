package model

// Message is one chat line as supplied by the client. Order is significant and is
// never changed by the pipeline.
type Message struct {
	Author    string `json:"author"`
	Timestamp string `json:"timestamp"`
	Content   string `json:"content"`
}

type DialogRequest struct {
	Messages []Message `json:"messages"`
	Context  string    `json:"context,omitempty"`
}

type DialogResponse struct {
	SuggestedReply        string  `json:"suggested_reply"`
	ProcessingTimeSeconds float64 `json:"processing_time"`
}

// DialogPreview is the result of running the formatting stages without a model call.
type DialogPreview struct {
	Transcript        string
	TemporalAnalysis  string
	Prompt            string
	MessageCount      int
	InstructionLength int
}
