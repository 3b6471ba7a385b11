// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// render.go - Styling and display for the interactive chat REPL.
//
// USABILITY: Markdown rendering and history for better CLI experience
//
// Colors are automatically disabled for non-TTY output (piped, redirected),
// and the NO_COLOR / FORCE_COLOR environment variables are respected.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatline/internal/ollama"
	"github.com/jeranaias/chatline/internal/session"
	"github.com/jeranaias/chatline/internal/util"
)

// init configures lipgloss color profile based on terminal capabilities.
func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// STYLES
// =============================================================================

var (
	// Prompt style
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // Cyan
			Bold(true)

	// Welcome banner style
	welcomeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")). // Purple
			Bold(true)

	// Info style
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")) // Light gray

	// Command feedback style
	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")) // Green

	// Warning style
	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // Yellow/Orange

	// Error style
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	// Section header style
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // Cyan
			Bold(true)

	// User role style in history listings
	userRoleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // Cyan

	// Assistant role style in history listings
	assistantRoleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")) // Purple
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the global glamour renderer for markdown output.
// USABILITY: Renders markdown responses with syntax highlighting and formatting.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to plain text if renderer initialization fails
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails or renderer is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}

	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayResponse displays a response with markdown rendering when appropriate.
// Only renders markdown when stdout is a TTY to avoid corrupting piped output.
func displayResponse(response string) {
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(response))
	} else {
		fmt.Print(response)
	}
}

// streamToStdout prints tokens directly to stdout.
func streamToStdout(token string) {
	fmt.Print(token)
}

// =============================================================================
// DISPLAY FUNCTIONS
// =============================================================================

// printWelcome prints the welcome banner.
func printWelcome(cs *ChatSession) {
	fmt.Println()
	fmt.Println(welcomeStyle.Render("chatline"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 30)))
	fmt.Printf("%s %s\n",
		infoStyle.Render("Model:"),
		commandStyle.Render(cs.Session.Model()))
	fmt.Printf("%s %s\n",
		infoStyle.Render("Server:"),
		commandStyle.Render(cs.Config.Ollama.URL))
	fmt.Println()
	fmt.Println(infoStyle.Render("Type your message and press Enter. Commands: /help, /quit"))
	fmt.Println()
}

// printHelp prints available commands.
func printHelp() {
	fmt.Println()
	fmt.Println(headerStyle.Render("Available Commands"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 20)))
	fmt.Println()

	commands := []struct {
		cmd  string
		desc string
	}{
		{"/help, /h", "Show this help"},
		{"/clear, /c", "Clear conversation history"},
		{"/history", "Show conversation history"},
		{"/model [name]", "Show or switch model"},
		{"/models", "List models on the server"},
		{"/save <file>", "Save conversation to a JSON file"},
		{"/load <file>", "Load conversation from a JSON file"},
		{"/batch <file>", "Run prompts from a file, one per line"},
		{"/quit, /q", "Exit chat"},
	}

	for _, c := range commands {
		fmt.Printf("  %s  %s\n",
			commandStyle.Render(fmt.Sprintf("%-15s", c.cmd)),
			infoStyle.Render(c.desc))
	}

	fmt.Println()
	fmt.Println(infoStyle.Render("Tip: Ctrl+C cancels current generation, Ctrl+D exits"))
	fmt.Println()
}

// printHistory prints the numbered conversation history.
func printHistory(s *session.Session) {
	if s.IsEmpty() {
		fmt.Println(infoStyle.Render("[No messages yet]"))
		return
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Conversation History"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 25)))
	fmt.Println()

	for _, turn := range s.History() {
		role := turn.Role.DisplayName()
		switch turn.Role {
		case session.RoleUser:
			role = userRoleStyle.Render(role)
		case session.RoleAssistant:
			role = assistantRoleStyle.Render(role)
		}

		content := util.TruncateRunes(turn.Content, 100)
		content = strings.ReplaceAll(content, "\n", " ")

		fmt.Printf("  %d. %s: %s\n", turn.Index, role, content)
	}

	fmt.Println()
}

// printModels prints the models available on the server.
func printModels(models []ollama.ModelInfo) {
	if len(models) == 0 {
		fmt.Println(infoStyle.Render("[No models installed]"))
		return
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Available Models"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 20)))
	fmt.Println()

	for _, m := range models {
		fmt.Printf("  %s  %s\n",
			commandStyle.Render(fmt.Sprintf("%-30s", m.Name)),
			infoStyle.Render(m.FormatSize()))
	}

	fmt.Println()
}

// printExitSummary prints a short summary on exit.
func printExitSummary(cs *ChatSession) {
	if cs.Session.IsEmpty() {
		fmt.Println(infoStyle.Render("Goodbye!"))
		return
	}

	elapsed := time.Since(cs.StartTime).Round(time.Second)

	fmt.Println()
	fmt.Printf("%s %d turns in %s\n",
		infoStyle.Render("Session:"),
		cs.Session.Len(),
		elapsed.String())
	fmt.Println(infoStyle.Render("Goodbye!"))
}

// printError prints an error in the standard REPL format.
func printError(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
}
