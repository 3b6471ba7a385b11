// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the interactive chat REPL for chatline.
//
// The REPL reads lines with github.com/peterh/liner (arrow-key history,
// line editing), classifies each line with ParseCommand, and either
// dispatches a slash command or streams the message to the model.
// Responses render as markdown via glamour when stdout is a TTY and as
// raw text otherwise.
//
// # Key Types
//
//   - ChatSession: conversation, config, Ollama client, and cancel state
//   - Command / CommandKind: one classified input line
//   - ChatCLI: liner wrapper with persistent input history
//   - Args: parsed command-line flags
//
// # Usage
//
//	args, err := cli.ParseArgs(os.Args[1:])
//	cfg, err := config.Load()
//	err = cli.HandleChatCommand(args, cfg)
//
// Ctrl+C during generation cancels the in-flight request and returns to
// the prompt; Ctrl+D exits.
package cli
