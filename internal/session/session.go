// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session contains the data structures for conversation state.
package session

import (
	"github.com/jeranaias/chatline/internal/ollama"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "AI"
	default:
		return string(r)
	}
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn represents a single message in the conversation. Turns are immutable
// once appended; Index is the 1-based position in the conversation.
type Turn struct {
	Index   int    `json:"-"`
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// =============================================================================
// SESSION TYPE
// =============================================================================

// Session holds an ordered conversation and the active model identifier.
// A Session is exclusively owned by a single control thread; operations are
// synchronous and unlocked.
type Session struct {
	model string
	turns []Turn
}

// New creates an empty session with the given model identifier.
func New(model string) *Session {
	return &Session{
		model: model,
		turns: make([]Turn, 0),
	}
}

// =============================================================================
// TURN MANAGEMENT
// =============================================================================

// Append adds a turn to the conversation and returns it.
// The turn receives the next sequence index; indices run 1..N in append order.
// Role alternation is not enforced: consecutive same-role turns are legal,
// e.g. after a load or a failed generation.
func (s *Session) Append(role Role, content string) Turn {
	turn := Turn{
		Index:   len(s.turns) + 1,
		Role:    role,
		Content: content,
	}
	s.turns = append(s.turns, turn)
	return turn
}

// AppendUser adds a user turn.
func (s *Session) AppendUser(content string) Turn {
	return s.Append(RoleUser, content)
}

// AppendAssistant adds an assistant turn.
func (s *Session) AppendAssistant(content string) Turn {
	return s.Append(RoleAssistant, content)
}

// Clear removes all turns. The active model is untouched.
func (s *Session) Clear() {
	s.turns = s.turns[:0]
}

// History returns the ordered turn sequence as a read view.
// The returned slice must not be mutated by the caller.
func (s *Session) History() []Turn {
	return s.turns
}

// Len returns the number of turns.
func (s *Session) Len() int {
	return len(s.turns)
}

// IsEmpty returns true if there are no turns.
func (s *Session) IsEmpty() bool {
	return len(s.turns) == 0
}

// LastTurn returns the most recent turn, or nil if empty.
func (s *Session) LastTurn() *Turn {
	if len(s.turns) == 0 {
		return nil
	}
	return &s.turns[len(s.turns)-1]
}

// =============================================================================
// MODEL MANAGEMENT
// =============================================================================

// Model returns the active model identifier.
func (s *Session) Model() string {
	return s.model
}

// SetModel replaces the active model identifier. Existing turns are never
// altered, and the identifier is not validated against the inference service;
// an unknown model surfaces at request time.
func (s *Session) SetModel(model string) {
	s.model = model
}

// =============================================================================
// OLLAMA CONVERSION
// =============================================================================

// ToOllamaMessages converts the conversation to Ollama message format,
// oldest turn first.
func (s *Session) ToOllamaMessages() []ollama.Message {
	messages := make([]ollama.Message, 0, len(s.turns))
	for _, turn := range s.turns {
		messages = append(messages, ollama.Message{
			Role:    turn.Role.String(),
			Content: turn.Content,
		})
	}
	return messages
}
