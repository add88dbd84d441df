// Package chat provides the conversation API client for AEGIS RAG:
// multi-turn message history, single-shot question answering, and SSE
// streaming of incremental answer tokens with their retrieval sources.
package chat
