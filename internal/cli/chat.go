// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat REPL for chatline.
//
// CLI: Comprehensive help and examples for all commands
// USABILITY: Markdown rendering and history for better CLI experience
//
// Examples:
//   chatline                         Start interactive chat (default model)
//   chatline --model mistral:7b      Use specific model
//   chatline --load chat.json        Resume a saved conversation
//
// Interactive Commands (during chat):
//   /help, /h           Show available commands
//   /clear, /c          Clear conversation history
//   /history            Show conversation history
//   /model [name]       Show or switch model
//   /models             List models on the server
//   /save <file>        Save conversation to a JSON file
//   /load <file>        Load conversation from a JSON file
//   /batch <file>       Run prompts from a file, one per line
//   /quit, /q           Exit chat
//   Ctrl+C              Cancel current generation
//   Ctrl+D              Exit chat
package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/peterh/liner"

	"github.com/jeranaias/chatline/internal/config"
	"github.com/jeranaias/chatline/internal/ollama"
	"github.com/jeranaias/chatline/internal/session"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
// USABILITY: Supports arrow keys for history navigation and line editing.
type ChatCLI struct {
	line        *liner.State
	historyFile string
	persist     bool
	// Oldest entries are dropped past this many; 0 keeps everything.
	maxEntries int
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI(cfg *config.Config) *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	historyFile, err := config.HistoryPath()
	if err != nil {
		historyFile = ""
	}

	cli := &ChatCLI{
		line:        line,
		historyFile: historyFile,
		persist:     cfg.History.Enabled && historyFile != "",
		maxEntries:  cfg.History.MaxEntries,
	}

	cli.LoadHistory()

	return cli
}

// LoadHistory loads input history from file.
func (c *ChatCLI) LoadHistory() {
	if !c.persist {
		return
	}
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
// Supports history navigation with arrow keys.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}

	return input, nil
}

// SaveHistory persists input history to file with secure permissions,
// keeping at most maxEntries of the newest lines.
func (c *ChatCLI) SaveHistory() {
	if !c.persist {
		return
	}
	if err := config.EnsureConfigDir(); err != nil {
		return
	}

	var buf bytes.Buffer
	if _, err := c.line.WriteHistory(&buf); err != nil {
		return
	}

	// SECURITY: 0600 - owner read/write only
	os.WriteFile(c.historyFile, truncateHistory(buf.Bytes(), c.maxEntries), 0600)
}

// truncateHistory keeps the last max newline-terminated entries of a
// history file. max <= 0 means unlimited.
func truncateHistory(data []byte, max int) []byte {
	if max <= 0 {
		return data
	}
	trimmed := bytes.TrimRight(data, "\n")
	if len(trimmed) == 0 {
		return data
	}
	lines := bytes.Split(trimmed, []byte("\n"))
	if len(lines) <= max {
		return data
	}
	kept := bytes.Join(lines[len(lines)-max:], []byte("\n"))
	return append(kept, '\n')
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// SESSION STATE
// =============================================================================

// ChatSession holds the state for an interactive chat session.
type ChatSession struct {
	// Conversation history plus active model
	Session *session.Session

	// Configuration
	Config *config.Config
	Quiet  bool

	// Tracking
	StartTime time.Time

	// Client
	Client *ollama.Client

	// Cancel function for the in-flight request, nil when idle.
	// Guarded by cancelMu: the signal goroutine fires it while the
	// control loop installs and clears it.
	cancelMu   sync.Mutex
	cancelFunc context.CancelFunc

	// Input history handler
	InputCLI *ChatCLI
}

// setCancel installs (or, with nil, clears) the cancel function for the
// in-flight request.
func (cs *ChatSession) setCancel(cancel context.CancelFunc) {
	cs.cancelMu.Lock()
	cs.cancelFunc = cancel
	cs.cancelMu.Unlock()
}

// cancelInFlight cancels the in-flight request, if any, and reports
// whether there was one. Safe to call from the signal goroutine.
func (cs *ChatSession) cancelInFlight() bool {
	cs.cancelMu.Lock()
	defer cs.cancelMu.Unlock()
	if cs.cancelFunc == nil {
		return false
	}
	cs.cancelFunc()
	cs.cancelFunc = nil
	return true
}

// NewChatSession creates a new chat session from parsed arguments and config.
func NewChatSession(args Args, cfg *config.Config) *ChatSession {
	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL:      cfg.Ollama.URL,
		Timeout:      cfg.Ollama.Timeout(),
		DefaultModel: cfg.DefaultModel,
	})

	// Model precedence: CLI arg > config
	model := args.Model
	if model == "" {
		model = cfg.DefaultModel
	}

	return &ChatSession{
		Session:   session.New(model),
		Config:    cfg,
		Quiet:     args.Quiet,
		StartTime: time.Now(),
		Client:    client,
		InputCLI:  NewChatCLI(cfg),
	}
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// HandleChatCommand runs the interactive REPL until the user exits.
func HandleChatCommand(args Args, cfg *config.Config) error {
	cs := NewChatSession(args, cfg)

	// Resume a saved conversation when requested. A bad file is not fatal:
	// warn and start fresh.
	if args.LoadPath != "" {
		if loaded, err := session.Load(args.LoadPath); err != nil {
			fmt.Fprintf(os.Stderr, "%s could not load %s: %v\n",
				warningStyle.Render("[Warning]"), args.LoadPath, err)
		} else {
			cs.Session = loaded
			if !cs.Quiet {
				fmt.Printf("%s Loaded %d turns from %s\n",
					commandStyle.Render("[OK]"), loaded.Len(), args.LoadPath)
			}
		}
	}

	// A down server is not fatal either; every request reports its own
	// error, so the user can start Ollama mid-session.
	ctx := context.Background()
	if err := cs.Client.CheckRunning(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s Ollama is not reachable at %s. Start it with: ollama serve\n",
			warningStyle.Render("[Warning]"), cs.Config.Ollama.URL)
	}

	if !cs.Quiet {
		printWelcome(cs)
	}

	defer cs.InputCLI.Close()

	// Ctrl+C cancels the in-flight request instead of killing the process.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		for range sigChan {
			if cs.cancelInFlight() {
				fmt.Fprintln(os.Stderr, "\n"+warningStyle.Render("[Cancelled]"))
			}
		}
	}()

	// Main REPL loop using liner for input history
	for {
		input, err := cs.InputCLI.ReadInput(promptStyle.Render("you> "))
		if err != nil {
			if err == liner.ErrPromptAborted {
				// Ctrl+C at the prompt - stay in the loop
				fmt.Println(warningStyle.Render("Use /quit to exit"))
				continue
			}
			// EOF (Ctrl+D) or other error - exit gracefully
			fmt.Println()
			printExitSummary(cs)
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if IsExitWord(input) {
			printExitSummary(cs)
			return nil
		}

		shouldContinue, err := dispatchCommand(cs, ParseCommand(input))
		if err != nil {
			printError(err)
		}
		if !shouldContinue {
			printExitSummary(cs)
			return nil
		}
	}
}

// =============================================================================
// COMMAND DISPATCH
// =============================================================================

// dispatchCommand executes one parsed command.
// Returns (shouldContinue, error) where shouldContinue=false means exit.
func dispatchCommand(cs *ChatSession, cmd Command) (bool, error) {
	switch cmd.Kind {
	case CmdNone:
		return true, processMessage(cs, cmd.Arg)

	case CmdHelp:
		printHelp()
		return true, nil

	case CmdClear:
		cs.Session.Clear()
		fmt.Println(commandStyle.Render("[Conversation cleared]"))
		return true, nil

	case CmdHistory:
		printHistory(cs.Session)
		return true, nil

	case CmdModel:
		return true, handleModelCommand(cs, cmd.Arg)

	case CmdModels:
		return true, handleModelsCommand(cs)

	case CmdSave:
		if cmd.Arg == "" {
			fmt.Println(infoStyle.Render("Usage: /save <file>"))
			return true, nil
		}
		if err := session.Save(cs.Session, cmd.Arg); err != nil {
			return true, err
		}
		fmt.Printf("%s Saved %d turns to %s\n",
			commandStyle.Render("[OK]"), cs.Session.Len(), cmd.Arg)
		return true, nil

	case CmdLoad:
		if cmd.Arg == "" {
			fmt.Println(infoStyle.Render("Usage: /load <file>"))
			return true, nil
		}
		loaded, err := session.Load(cmd.Arg)
		if err != nil {
			// The current conversation stays intact on a failed load.
			return true, err
		}
		cs.Session = loaded
		fmt.Printf("%s Loaded %d turns from %s (model: %s)\n",
			commandStyle.Render("[OK]"), loaded.Len(), cmd.Arg, loaded.Model())
		return true, nil

	case CmdBatch:
		if cmd.Arg == "" {
			fmt.Println(infoStyle.Render("Usage: /batch <file>"))
			return true, nil
		}
		return true, RunBatch(cs, cmd.Arg)

	case CmdQuit:
		return false, nil

	case CmdUnknown:
		return true, fmt.Errorf("unknown command: %s (type /help for commands)", cmd.Arg)

	default:
		return true, fmt.Errorf("unhandled command kind %d", cmd.Kind)
	}
}

// handleModelCommand shows or switches the active model.
func handleModelCommand(cs *ChatSession, arg string) error {
	if arg == "" {
		fmt.Printf("%s Current model: %s\n",
			infoStyle.Render("[Model]"),
			commandStyle.Render(cs.Session.Model()))
		return nil
	}

	// The switch always goes through. An unknown name only warns here and
	// surfaces as a real error on the next generation.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if !cs.Client.ModelExists(ctx, arg) {
		fmt.Fprintf(os.Stderr, "%s Model '%s' not found on server, will attempt to use anyway\n",
			warningStyle.Render("[Warning]"), arg)
	}

	cs.Session.SetModel(arg)
	fmt.Printf("%s Switched to model: %s\n",
		commandStyle.Render("[OK]"), arg)

	return nil
}

// handleModelsCommand lists the models installed on the server.
func handleModelsCommand(cs *ChatSession) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	models, err := cs.Client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	printModels(models)
	return nil
}

// =============================================================================
// MESSAGE PROCESSING
// =============================================================================

// processMessage sends a message to the model and streams the response.
//
// The user turn is recorded before the request and stays in the
// conversation even when generation fails, so a retry or a saved
// transcript shows what was asked.
func processMessage(cs *ChatSession, input string) error {
	cs.Session.AppendUser(input)

	ctx, cancel := context.WithCancel(context.Background())
	cs.setCancel(cancel)
	defer func() {
		cs.setCancel(nil)
		cancel()
	}()

	// USABILITY: Render markdown on TTY for better formatting. When
	// rendering, collect the full response first; otherwise stream tokens
	// as they arrive.
	useMarkdown := IsStdoutTTY()

	fmt.Println()

	accumulator := ollama.NewStreamAccumulator()
	startTime := time.Now()

	err := cs.Client.ChatStream(ctx, cs.Session.Model(), cs.Session.ToOllamaMessages(), func(chunk ollama.StreamChunk) {
		if chunk.Error != nil {
			printError(chunk.Error)
			return
		}

		if !useMarkdown {
			streamToStdout(chunk.Content)
		}

		accumulator.Add(chunk)
	})

	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Abandoned by Ctrl+C. The partial response is discarded; the
			// user turn stays.
			return nil
		}
		return err
	}

	responseContent := accumulator.GetContent()

	if useMarkdown {
		displayResponse(responseContent)
	}

	cs.Session.AppendAssistant(responseContent)

	fmt.Println()
	fmt.Println()

	if !cs.Quiet {
		showBriefStats(accumulator, time.Since(startTime))
	}

	return nil
}

// showBriefStats shows token counts and elapsed time after a response.
func showBriefStats(acc *ollama.StreamAccumulator, elapsed time.Duration) {
	tokens := acc.PromptTokens + acc.CompletionTokens
	if tokens == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "%s %d tokens | %s\n",
		infoStyle.Render("[Stats]"),
		tokens,
		elapsed.Round(time.Millisecond))
}
