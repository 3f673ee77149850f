package client

import "context"

// Chat sends one message to the assistant. A failure reported by the
// assistant is returned as an *APIError whose Message is the response content.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.post(ctx, "/api/v1/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ask is shorthand for a staff chat message.
func (c *Client) Ask(ctx context.Context, message string) (*ChatResponse, error) {
	return c.Chat(ctx, ChatRequest{Message: message, UserType: UserTypeInternal})
}
