// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// command.go - Slash command parsing for the interactive chat REPL.
//
// Every input line is classified into exactly one Command. Lines that do
// not start with "/" are regular messages (CmdNone); lines starting with
// "/" are looked up against the known command set, and anything
// unrecognized becomes CmdUnknown so the dispatcher can report it without
// sending it to the model.
package cli

import (
	"strings"
)

// =============================================================================
// COMMAND KINDS
// =============================================================================

// CommandKind identifies one of the known slash commands.
type CommandKind int

const (
	// CmdNone means the input is a regular chat message, not a command.
	CmdNone CommandKind = iota
	// CmdHelp shows the command reference.
	CmdHelp
	// CmdClear wipes the conversation, keeping the active model.
	CmdClear
	// CmdHistory prints the numbered conversation so far.
	CmdHistory
	// CmdModel shows the active model, or switches it when an argument is given.
	CmdModel
	// CmdModels lists the models available on the inference server.
	CmdModels
	// CmdSave writes the conversation to a JSON file.
	CmdSave
	// CmdLoad replaces the conversation with one read from a JSON file.
	CmdLoad
	// CmdBatch runs prompts from a file through the conversation in order.
	CmdBatch
	// CmdQuit exits the REPL.
	CmdQuit
	// CmdUnknown is a slash command that matched nothing; Arg holds the word.
	CmdUnknown
)

// Command is a classified input line: the command kind plus its single
// optional argument (model name or file path).
type Command struct {
	Kind CommandKind
	Arg  string
}

// =============================================================================
// PARSING
// =============================================================================

// ParseCommand classifies a trimmed input line. Regular messages come back
// as CmdNone with the full line in Arg. The argument, when present, is
// everything after the command word with surrounding whitespace removed,
// so file paths containing spaces survive.
func ParseCommand(input string) Command {
	if !strings.HasPrefix(input, "/") {
		return Command{Kind: CmdNone, Arg: input}
	}

	word := input
	arg := ""
	if i := strings.IndexAny(input, " \t"); i >= 0 {
		word = input[:i]
		arg = strings.TrimSpace(input[i+1:])
	}

	switch strings.ToLower(word) {
	case "/help", "/h", "/?", "/":
		return Command{Kind: CmdHelp}
	case "/clear", "/c":
		return Command{Kind: CmdClear}
	case "/history":
		return Command{Kind: CmdHistory}
	case "/model", "/m":
		return Command{Kind: CmdModel, Arg: arg}
	case "/models":
		return Command{Kind: CmdModels}
	case "/save":
		return Command{Kind: CmdSave, Arg: arg}
	case "/load":
		return Command{Kind: CmdLoad, Arg: arg}
	case "/batch":
		return Command{Kind: CmdBatch, Arg: arg}
	case "/quit", "/q", "/exit":
		return Command{Kind: CmdQuit}
	default:
		return Command{Kind: CmdUnknown, Arg: word}
	}
}

// IsExitWord reports whether a bare (unslashed) input line should exit the
// REPL. Accepts "exit" and "quit" in any case.
func IsExitWord(input string) bool {
	return strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit")
}
