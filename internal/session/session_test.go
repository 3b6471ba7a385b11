// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session contains the data structures for conversation state.
package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// APPEND TESTS
// =============================================================================

func TestSession_Append_MonotonicIndices(t *testing.T) {
	s := New("m1")

	// Indices must be exactly 1..N in call order, regardless of role.
	roles := []Role{RoleUser, RoleUser, RoleAssistant, RoleUser, RoleAssistant}
	for i, role := range roles {
		turn := s.Append(role, "msg")
		assert.Equal(t, i+1, turn.Index)
	}

	history := s.History()
	require.Len(t, history, len(roles))
	for i, turn := range history {
		assert.Equal(t, i+1, turn.Index)
		assert.Equal(t, roles[i], turn.Role)
	}
}

func TestSession_Append_ReturnsTurn(t *testing.T) {
	s := New("m1")

	turn := s.AppendUser("hello")

	assert.Equal(t, RoleUser, turn.Role)
	assert.Equal(t, "hello", turn.Content)
	assert.Equal(t, 1, turn.Index)
}

func TestSession_BasicExchange(t *testing.T) {
	s := New("m1")

	s.AppendUser("hello")
	s.AppendAssistant("hi there")

	history := s.History()
	require.Len(t, history, 2)
	assert.Equal(t, Turn{Index: 1, Role: RoleUser, Content: "hello"}, history[0])
	assert.Equal(t, Turn{Index: 2, Role: RoleAssistant, Content: "hi there"}, history[1])
	assert.Equal(t, "m1", s.Model())
}

// =============================================================================
// CLEAR TESTS
// =============================================================================

func TestSession_Clear(t *testing.T) {
	s := New("m1")
	s.AppendUser("a")
	s.AppendAssistant("b")

	s.Clear()

	assert.True(t, s.IsEmpty())
	assert.Equal(t, "m1", s.Model(), "clear must not touch the model")

	// Indices restart at 1 after a clear.
	turn := s.AppendUser("c")
	assert.Equal(t, 1, turn.Index)
}

func TestSession_Clear_Idempotent(t *testing.T) {
	s := New("m1")

	s.Clear()
	s.Clear()

	assert.Zero(t, s.Len())
}

// =============================================================================
// MODEL TESTS
// =============================================================================

func TestSession_SetModel_DoesNotTouchTurns(t *testing.T) {
	s := New("m1")
	s.AppendUser("hello")
	s.AppendAssistant("hi")

	s.SetModel("m2")

	assert.Equal(t, "m2", s.Model())
	history := s.History()
	require.Len(t, history, 2)
	assert.Equal(t, "hello", history[0].Content)
	assert.Equal(t, "hi", history[1].Content)
}

// =============================================================================
// LAST TURN TESTS
// =============================================================================

func TestSession_LastTurn(t *testing.T) {
	s := New("m1")
	assert.Nil(t, s.LastTurn())

	s.AppendUser("a")
	s.AppendAssistant("b")

	last := s.LastTurn()
	require.NotNil(t, last)
	assert.Equal(t, RoleAssistant, last.Role)
	assert.Equal(t, "b", last.Content)
}

// =============================================================================
// OLLAMA CONVERSION TESTS
// =============================================================================

func TestSession_ToOllamaMessages(t *testing.T) {
	s := New("m1")
	s.AppendUser("hello")
	s.AppendAssistant("hi")
	s.AppendUser("how are you?")

	messages := s.ToOllamaMessages()

	require.Len(t, messages, 3)
	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "hello", messages[0].Content)
	assert.Equal(t, "assistant", messages[1].Role)
	assert.Equal(t, "user", messages[2].Role)
}

// =============================================================================
// PERSISTENCE TESTS
// =============================================================================

func TestSession_SaveLoad_RoundTrip(t *testing.T) {
	s := New("m2")
	s.AppendUser("first question")
	s.AppendAssistant("first answer")
	s.AppendUser("second question")
	s.AppendAssistant("second answer")

	path := filepath.Join(t.TempDir(), "x.json")
	require.NoError(t, Save(s, path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, s.Model(), loaded.Model())
	assert.Equal(t, s.History(), loaded.History())
}

func TestSession_SaveLoad_Empty(t *testing.T) {
	s := New("m1")

	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, Save(s, path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.True(t, loaded.IsEmpty())
	assert.Equal(t, "m1", loaded.Model())
}

func TestSession_Save_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.json")

	s1 := New("m1")
	s1.AppendUser("old")
	require.NoError(t, Save(s1, path))

	s2 := New("m2")
	s2.AppendUser("new")
	require.NoError(t, Save(s2, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "m2", loaded.Model())
	require.Equal(t, 1, loaded.Len())
	assert.Equal(t, "new", loaded.History()[0].Content)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.Error(t, err)
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_UnknownRole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.json")
	doc := `{"model":"m1","turns":[{"role":"system","content":"x"}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown role")
}

func TestDocument_StableFieldNames(t *testing.T) {
	s := New("m1")
	s.AppendUser("hello")

	path := filepath.Join(t.TempDir(), "stable.json")
	require.NoError(t, Save(s, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// The on-disk contract: "model" and "turns" with role/content pairs.
	assert.Contains(t, string(data), `"model": "m1"`)
	assert.Contains(t, string(data), `"role": "user"`)
	assert.Contains(t, string(data), `"content": "hello"`)
}

func TestFromDocument_ReassignsIndices(t *testing.T) {
	doc := Document{
		Model: "m1",
		Turns: []Turn{
			{Role: RoleUser, Content: "a"},
			{Role: RoleAssistant, Content: "b"},
		},
	}

	s, err := FromDocument(doc)
	require.NoError(t, err)

	history := s.History()
	require.Len(t, history, 2)
	assert.Equal(t, 1, history[0].Index)
	assert.Equal(t, 2, history[1].Index)
}
