// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// batch.go - Batch prompt processing for the chat REPL.
//
// Reads prompts from a file (one per line, blank lines skipped) and runs
// them through the current conversation in order. Each prompt sees the
// turns produced by the ones before it.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/chatline/internal/util"
)

// RunBatch processes every prompt in the named file against the current
// conversation.
//
// Failures are isolated per prompt: a failed prompt leaves its user turn
// in the conversation and processing moves on to the next line, so one
// bad generation never discards the rest of the file. The summary line
// reports how many prompts succeeded and how many failed.
func RunBatch(cs *ChatSession, path string) error {
	prompts, err := readBatchFile(path)
	if err != nil {
		return err
	}

	if len(prompts) == 0 {
		fmt.Println(infoStyle.Render("[Batch file has no prompts]"))
		return nil
	}

	fmt.Printf("%s Running %d prompts from %s\n",
		infoStyle.Render("[Batch]"), len(prompts), path)

	processed := 0
	failed := 0

	for i, prompt := range prompts {
		fmt.Println()
		fmt.Printf("%s %s\n",
			promptStyle.Render(fmt.Sprintf("[%d/%d]", i+1, len(prompts))),
			util.TruncateRunes(prompt, 80))

		if err := runBatchPrompt(cs, prompt); err != nil {
			failed++
			printError(err)
			continue
		}
		processed++
	}

	fmt.Println()
	if failed > 0 {
		fmt.Printf("%s %d succeeded, %d failed\n",
			warningStyle.Render("[Batch done]"), processed, failed)
	} else {
		fmt.Printf("%s %d prompts processed\n",
			commandStyle.Render("[Batch done]"), processed)
	}

	return nil
}

// runBatchPrompt runs a single batch prompt as one blocking exchange.
// The user turn stays in the conversation even when the request fails.
func runBatchPrompt(cs *ChatSession, prompt string) error {
	cs.Session.AppendUser(prompt)

	resp, err := cs.Client.Chat(context.Background(), cs.Session.Model(), cs.Session.ToOllamaMessages())
	if err != nil {
		return err
	}

	displayResponse(resp.Message.Content)
	fmt.Println()

	cs.Session.AppendAssistant(resp.Message.Content)
	return nil
}

// readBatchFile reads the prompt lines from a batch file, in file order,
// dropping blank and whitespace-only lines.
func readBatchFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer f.Close()

	var prompts []string
	scanner := bufio.NewScanner(f)
	// Allow long prompt lines
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		prompts = append(prompts, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return prompts, nil
}
