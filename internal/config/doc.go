// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for chatline.
//
// Configuration lives at ~/.chatline/config.toml and is written with 0600
// permissions via an atomic temp-file-and-rename. Missing files are not an
// error: Load falls back to built-in defaults, then applies environment
// overrides (CHATLINE_MODEL, CHATLINE_OLLAMA_URL, OLLAMA_HOST).
//
// # Key Types
//
//   - Config: default model plus Ollama connection and history settings
//   - OllamaConfig: base URL and request timeout
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//		// malformed file or invalid values; defaults never error
//	}
//	client := ollama.NewClientWithConfig(ollama.ClientConfig{
//		BaseURL: cfg.Ollama.URL,
//		Timeout: cfg.Ollama.Timeout(),
//	})
package config
