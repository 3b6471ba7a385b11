// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session contains the data structures for conversation state.
//
// A Session is the full ordered conversation plus the currently selected
// model identifier. Turns are append-only with strictly increasing 1-based
// sequence indices; the session is owned by a single control thread and
// needs no locking.
//
// # Key Types
//
//   - Session: ordered turn sequence plus active model identifier
//   - Turn: one message, attributed to user or assistant
//   - Document: the flat JSON save/load representation
//
// # Usage
//
// Create a session and record an exchange:
//
//	s := session.New("llama3.2:1b")
//	s.AppendUser("hello")
//	s.AppendAssistant("hi there")
//
// Persist and restore:
//
//	err := session.Save(s, "chat.json")
//	s2, err := session.Load("chat.json")
//
// Save followed by Load reproduces the turn sequence and model exactly.
package session
