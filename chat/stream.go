package chat

// StreamChunk represents one incremental update received while streaming an
// assistant answer.
type StreamChunk struct {
	// Delta contains the incremental text content for this chunk.
	// This should be appended to previous chunks to build the full answer.
	Delta string `json:"delta"`

	// Sources contains retrieval citations attached to this chunk.
	// Sources may arrive spread across several chunks and need to be
	// accumulated.
	Sources []Source `json:"sources,omitempty"`

	// FinishReason indicates why the generation stopped.
	// Only set on the final chunk. Common values: "stop", "length", "error".
	FinishReason string `json:"finish_reason,omitempty"`
}

// IsFinal returns true if this is the final chunk in the stream.
func (c *StreamChunk) IsFinal() bool {
	return c.FinishReason != ""
}

// HasContent returns true if this chunk contains text content.
func (c *StreamChunk) HasContent() bool {
	return c.Delta != ""
}

// StreamAccumulator accumulates chunks from a streaming answer.
type StreamAccumulator struct {
	// Content holds the accumulated answer text.
	Content string

	// Sources holds the accumulated citations, deduplicated by document ID.
	Sources []Source

	// FinishReason holds the final reason for completion.
	FinishReason string

	seen map[string]bool
}

// NewStreamAccumulator creates a new accumulator for streaming answers.
func NewStreamAccumulator() *StreamAccumulator {
	return &StreamAccumulator{
		seen: make(map[string]bool),
	}
}

// Add processes a new chunk and updates the accumulator state.
func (a *StreamAccumulator) Add(chunk StreamChunk) {
	if chunk.Delta != "" {
		a.Content += chunk.Delta
	}

	for _, src := range chunk.Sources {
		if src.DocumentID == "" || a.seen[src.DocumentID] {
			continue
		}
		a.seen[src.DocumentID] = true
		a.Sources = append(a.Sources, src)
	}

	if chunk.FinishReason != "" {
		a.FinishReason = chunk.FinishReason
	}
}

// IsComplete returns true if the accumulator has received a finish reason.
func (a *StreamAccumulator) IsComplete() bool {
	return a.FinishReason != ""
}

// ToMessage converts the accumulated state into an assistant message.
func (a *StreamAccumulator) ToMessage() Message {
	return Message{
		Role:    RoleAssistant,
		Content: a.Content,
		Sources: a.Sources,
	}
}

// Reset clears the accumulator state for reuse.
func (a *StreamAccumulator) Reset() {
	a.Content = ""
	a.Sources = nil
	a.FinishReason = ""
	a.seen = make(map[string]bool)
}
