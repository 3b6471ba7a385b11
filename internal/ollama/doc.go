// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for communicating with Ollama API.
//
// This package implements a client for the Ollama local LLM server,
// supporting both streaming and non-streaming chat completions, model
// listing, and health checks. Every call is a single attempt; failures
// are classified into distinct error kinds (service not running, timeout,
// model not found, unexpected status, malformed response) so callers can
// report them precisely.
//
// # Key Types
//
//   - Client: HTTP client for Ollama API communication
//   - Message: Chat message with role and content
//   - ChatRequest: Request structure for chat completions
//   - ChatResponse: Response structure with message and metrics
//   - StreamReader: Line-by-line reader for streaming responses
//   - ClientError: Classified client error with cause chain
//
// # Usage
//
// Create a client and send a chat request:
//
//	client := ollama.NewClient()
//	resp, err := client.Chat(ctx, "llama3.2:1b", []ollama.Message{
//	    ollama.NewUserMessage("Hello"),
//	})
//
// For streaming responses:
//
//	err := client.ChatStream(ctx, model, messages, func(chunk ollama.StreamChunk) {
//	    fmt.Print(chunk.Content)
//	})
package ollama
