package models

// ChatRequest is the payload of POST /ai/chat
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ChatResponse is the assistant turn returned by POST /ai/chat
type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
}

// Insight is a single AI-generated suggestion
type Insight struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// InsightsResponse is the payload of GET /ai/insights
type InsightsResponse struct {
	Insights []Insight `json:"insights"`
}
