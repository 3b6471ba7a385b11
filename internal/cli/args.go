// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// args.go - Command-line argument parsing for chatline.
//
// Supported flag formats:
//
//	--flag value     Long flag with space-separated value
//	--flag=value     Long flag with equals sign
//	-f value         Short flag with space-separated value
//	--flag           Boolean flag (no value)
package cli

import (
	"fmt"
	"strings"
)

// Args holds the parsed command-line arguments.
type Args struct {
	// Model overrides the configured default model
	Model string
	// LoadPath is a saved conversation to resume on startup
	LoadPath string
	// URL overrides the configured Ollama base URL
	URL string
	// Quiet suppresses the welcome banner and per-response stats
	Quiet bool
	// ShowHelp prints usage and exits
	ShowHelp bool
	// ShowVersion prints the version and exits
	ShowVersion bool
}

// ParseArgs parses the raw command-line arguments (without the program name).
func ParseArgs(raw []string) (Args, error) {
	var args Args

	i := 0
	for i < len(raw) {
		arg := raw[i]

		name := arg
		value := ""
		hasValue := false
		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			parts := strings.SplitN(arg, "=", 2)
			name = parts[0]
			value = parts[1]
			hasValue = true
		}

		// next consumes the following argument as this flag's value
		next := func() (string, error) {
			if hasValue {
				return value, nil
			}
			if i+1 >= len(raw) {
				return "", fmt.Errorf("flag %s requires a value", name)
			}
			i++
			return raw[i], nil
		}

		switch name {
		case "-m", "--model":
			v, err := next()
			if err != nil {
				return args, err
			}
			args.Model = v

		case "--load":
			v, err := next()
			if err != nil {
				return args, err
			}
			args.LoadPath = v

		case "--url":
			v, err := next()
			if err != nil {
				return args, err
			}
			args.URL = v

		case "-q", "--quiet":
			args.Quiet = true

		case "-h", "--help":
			args.ShowHelp = true

		case "-V", "--version":
			args.ShowVersion = true

		default:
			return args, fmt.Errorf("unknown flag: %s", arg)
		}

		i++
	}

	return args, nil
}

// Usage returns the top-level usage text.
func Usage() string {
	return `chatline - interactive chat with a local Ollama server

Usage:
  chatline [flags]

Flags:
  -m, --model NAME    Use specific model (overrides config)
  --load FILE         Resume a saved conversation
  --url URL           Ollama server URL (overrides config)
  -q, --quiet         Minimal output
  -h, --help          Show this help
  -V, --version       Show version

Environment:
  CHATLINE_MODEL       Overrides default_model
  CHATLINE_OLLAMA_URL  Overrides ollama.url
  OLLAMA_HOST          Overrides ollama.url (lower precedence)

Configuration:
  ~/.chatline/config.toml
`
}
