// chatline - interactive terminal chat with a local Ollama server.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	"github.com/jeranaias/chatline/internal/cli"
	"github.com/jeranaias/chatline/internal/config"
)

// Version information (set at build time)
var (
	Version = "0.1.0"
)

func main() {
	args, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatline: %v\n", err)
		fmt.Fprint(os.Stderr, cli.Usage())
		os.Exit(2)
	}

	if args.ShowHelp {
		fmt.Print(cli.Usage())
		return
	}

	if args.ShowVersion {
		fmt.Printf("chatline %s\n", Version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatline: %v\n", err)
		os.Exit(3)
	}

	// --url beats config and environment
	if args.URL != "" {
		cfg.Ollama.URL = args.URL
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "chatline: %v\n", err)
			os.Exit(2)
		}
	}

	if err := cli.HandleChatCommand(args, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "chatline: %v\n", err)
		os.Exit(1)
	}
}
