package api

import (
	"context"
	"net/http"

	"github.com/sguter90/homenet/pkg/models"
)

// Chat sends one conversation turn. Pass the returned ConversationID on
// the next turn to continue the same conversation.
func (c *Client) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	var resp models.ChatResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/ai/chat", body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Insights returns AI-generated suggestions for the user
func (c *Client) Insights(ctx context.Context) ([]models.Insight, error) {
	var resp models.InsightsResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/ai/insights"}, &resp); err != nil {
		return nil, err
	}
	if resp.Insights == nil {
		resp.Insights = []models.Insight{}
	}
	return resp.Insights, nil
}
