// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session contains the data structures for conversation state.
package session

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// PERSISTED DOCUMENT
// =============================================================================

// Document is the on-disk representation of a session: the model identifier
// and the ordered turn list. This format is the durable save/load contract
// and must stay stable so old conversation files keep loading.
type Document struct {
	Model string `json:"model"`
	Turns []Turn `json:"turns"`
}

// Document returns the persisted form of the session.
func (s *Session) Document() Document {
	turns := make([]Turn, len(s.turns))
	copy(turns, s.turns)
	return Document{
		Model: s.model,
		Turns: turns,
	}
}

// FromDocument builds a session from a persisted document.
// Sequence indices are reassigned 1..N in document order. Documents carrying
// roles other than user/assistant are rejected.
func FromDocument(doc Document) (*Session, error) {
	s := New(doc.Model)
	for i, turn := range doc.Turns {
		if !turn.Role.Valid() {
			return nil, fmt.Errorf("turn %d: unknown role %q", i+1, turn.Role)
		}
		s.Append(turn.Role, turn.Content)
	}
	return s, nil
}

// =============================================================================
// SAVE / LOAD
// =============================================================================

// Save writes the session to path as indented JSON, overwriting any existing
// file. A single plain write is deliberate: the file is a low-stakes local
// artifact, so no atomic-rename or backup dance.
func Save(s *Session, path string) error {
	data, err := json.MarshalIndent(s.Document(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load reads a session document from path and builds a fresh session from it.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	s, err := FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("invalid session file: %w", err)
	}

	return s, nil
}
