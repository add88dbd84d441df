package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aegis-rag/sdk/apierr"
	"github.com/aegis-rag/sdk/transport"
)

// Backend endpoints served by the chat API.
const (
	chatPath   = "/api/v1/chat"
	streamPath = "/api/v1/chat/stream"
)

// Request is a chat turn sent to the backend.
type Request struct {
	// ConversationID ties the turn to an existing conversation, enabling
	// multi-turn context on the backend. Empty starts a new conversation.
	ConversationID string `json:"conversation_id,omitempty"`

	// Message is the user's question.
	Message string `json:"message"`

	// History carries prior turns for backends that are stateless.
	History []Message `json:"history,omitempty"`
}

// Response is the backend's complete answer to one chat turn.
type Response struct {
	// ConversationID identifies the conversation the turn belongs to.
	ConversationID string `json:"conversation_id"`

	// Answer is the assistant's full answer text.
	Answer string `json:"answer"`

	// Sources are the retrieval citations grounding the answer.
	Sources []Source `json:"sources,omitempty"`
}

// Client is the API client for RAG conversations.
type Client struct {
	transport *transport.Transport
	logger    *slog.Logger
}

// NewClient creates a chat client over the given transport.
func NewClient(t *transport.Transport) *Client {
	return &Client{
		transport: t,
		logger:    t.Logger(),
	}
}

// Send submits one chat turn and blocks for the complete answer.
func (c *Client) Send(ctx context.Context, req Request) (*Response, error) {
	const op = "Chat.Send"

	if req.Message == "" {
		return nil, apierr.Validation(op, fmt.Errorf("message is required"))
	}

	var resp Response
	if err := c.transport.PostJSON(ctx, op, chatPath, req, &resp); err != nil {
		return nil, err
	}

	if resp.Answer == "" {
		return nil, apierr.MalformedResponse(op, fmt.Errorf("response has no answer"))
	}

	return &resp, nil
}

// Stream submits one chat turn and returns a stream of incremental answer
// chunks. The caller must Close the stream when done, whether or not the
// stream was fully consumed.
func (c *Client) Stream(ctx context.Context, req Request) (*Stream, error) {
	const op = "Chat.Stream"

	if req.Message == "" {
		return nil, apierr.Validation(op, fmt.Errorf("message is required"))
	}

	resp, err := c.transport.Stream(ctx, op, streamPath, req)
	if err != nil {
		return nil, err
	}

	return &Stream{
		body:   resp.Body,
		events: transport.NewSSEReader(resp.Body),
		logger: c.logger,
	}, nil
}

// Stream delivers incremental answer chunks from an in-flight chat turn.
type Stream struct {
	body   io.ReadCloser
	events *transport.SSEReader
	logger *slog.Logger
	done   bool
}

// Recv returns the next chunk from the stream. It returns io.EOF once the
// stream has ended, either by a final chunk or by server close. Error events
// emitted by the backend are surfaced as KindBackend errors.
func (s *Stream) Recv() (StreamChunk, error) {
	const op = "Chat.Stream"

	if s.done {
		return StreamChunk{}, io.EOF
	}

	for {
		event, err := s.events.Next()
		if errors.Is(err, io.EOF) {
			s.done = true
			return StreamChunk{}, io.EOF
		}
		if err != nil {
			s.done = true
			return StreamChunk{}, apierr.Network(op, err)
		}

		// The backend terminates streams with a sentinel data frame.
		if event.Data == "[DONE]" {
			s.done = true
			return StreamChunk{}, io.EOF
		}

		if event.Name == "error" {
			s.done = true
			return StreamChunk{}, apierr.Backend(op, 0, event.Data)
		}

		if event.Data == "" {
			continue
		}

		var chunk StreamChunk
		if err := json.Unmarshal([]byte(event.Data), &chunk); err != nil {
			s.done = true
			return StreamChunk{}, apierr.MalformedResponse(op, fmt.Errorf("decoding stream chunk: %w", err))
		}

		if chunk.IsFinal() {
			s.done = true
		}
		return chunk, nil
	}
}

// Collect drains the stream into an accumulator and returns the assembled
// assistant message. The stream is closed afterwards.
func (s *Stream) Collect() (Message, error) {
	defer s.Close()

	acc := NewStreamAccumulator()
	for {
		chunk, err := s.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Message{}, err
		}
		acc.Add(chunk)
	}

	return acc.ToMessage(), nil
}

// Close releases the underlying connection. It is safe to call twice.
func (s *Stream) Close() error {
	if s.body == nil {
		return nil
	}
	body := s.body
	s.body = nil
	s.done = true
	if err := body.Close(); err != nil {
		s.logger.Warn("failed to close resource",
			"resource", "event stream",
			"error", err)
		return err
	}
	return nil
}
