// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the chatline application.
//
// The package covers two concerns:
//
//   - Atomic file writes: AtomicWriteFile writes via a temp file, fsync,
//     and rename so a crash never leaves a half-written file behind. Used
//     for configuration, where corruption would break every later start.
//   - Unicode-safe string handling: rune- and width-aware truncation
//     helpers that never split a multi-byte UTF-8 character, with display
//     widths computed by github.com/mattn/go-runewidth.
package util
