// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for docchat.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdUpload
	CmdSessions
	CmdHistory
	CmdDelete
	CmdExport
	CmdShare
	CmdStatus
	CmdFeatures
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Session  string // session id or share link to resume
	Language string // answer language override
	Backend  string // backend URL override
	JSON     bool   // output in JSON format
	Quiet    bool
	Verbose  bool

	// Command-specific
	Query      string
	Format     string // export format: text, markdown, json
	Output     string // export destination directory
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args (remaining after flag parsing)
	Raw []string

	// Options holds command-specific named options
	Options map[string]string
}

const usageText = `docchat - terminal client for the DocChat RAG backend

DocChat answers questions over your uploaded documents. Conversations
are grouped into sessions that persist across runs and can be shared
or exported.

Usage:
  docchat                      Start TUI (default)
  docchat ask "question"       Ask a single question
  docchat upload FILE...       Add documents to the knowledge base
  docchat sessions             List sessions on the backend
  docchat history [SESSION]    Print a session transcript
  docchat delete SESSION       Delete a session's history
  docchat export [SESSION]     Export a transcript to a file
  docchat share [SESSION]      Print a shareable session link
  docchat status               Check backend connectivity
  docchat features             List backend features
  docchat config [show|set]    Configuration
  docchat version              Show version
  docchat help                 Show this help

Global flags:
  --session ID|URL   Resume a specific session (accepts share links)
  --language LANG    Answer language: english, hindi, hinglish
  --backend URL      Backend URL (overrides config)
  --json             Output in JSON format
  -q, --quiet        Minimal output
  -v, --verbose      Verbose output

Export flags:
  --format FORMAT    text (default), markdown, or json
  -o, --output DIR   Destination directory (default: current)

Examples:
  docchat ask "What does the contract say about termination?"
  docchat ask --language hindi "Summarize chapter 3"
  docchat upload report.pdf notes.docx
  docchat export --format markdown session-1700000000000-ab12cd34
  docchat --session "http://localhost:3000?session=session-123-abc"

Environment:
  DOCCHAT_BACKEND_URL   Backend URL
  DOCCHAT_LANGUAGE      Default answer language
  DOCCHAT_THEME         TUI theme (dark, light)

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("docchat version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
	fmt.Printf("  Go version: %s\n", runtime.Version())
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given argument list. Split out from Parse for
// testability.
func ParseArgs(args []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(args)

	// No remaining args, default to TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "ask", "q":
		parseAskArgs(&parsedArgs, remaining)
		return CmdAsk, parsedArgs

	case "upload", "add":
		return CmdUpload, parsedArgs

	case "sessions", "ls":
		return CmdSessions, parsedArgs

	case "history", "show":
		if len(remaining) > 0 {
			parsedArgs.Subcommand = remaining[0]
		}
		return CmdHistory, parsedArgs

	case "delete", "rm":
		if len(remaining) > 0 {
			parsedArgs.Subcommand = remaining[0]
		}
		return CmdDelete, parsedArgs

	case "export":
		parseExportArgs(&parsedArgs, remaining)
		return CmdExport, parsedArgs

	case "share", "link":
		if len(remaining) > 0 {
			parsedArgs.Subcommand = remaining[0]
		}
		return CmdShare, parsedArgs

	case "status", "s":
		return CmdStatus, parsedArgs

	case "features":
		return CmdFeatures, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown command is treated as a question for ask
		all := append([]string{cmd}, remaining...)
		parsedArgs.Raw = all
		parseAskArgs(&parsedArgs, all)
		return CmdAsk, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	parsedArgs := Args{
		Options: make(map[string]string),
	}

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--session":
			if i+1 < len(args) {
				i++
				parsedArgs.Session = args[i]
			}
		case "--language", "--lang":
			if i+1 < len(args) {
				i++
				parsedArgs.Language = args[i]
			}
		case "--backend":
			if i+1 < len(args) {
				i++
				parsedArgs.Backend = args[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--session="):
				parsedArgs.Session = strings.TrimPrefix(arg, "--session=")
			case strings.HasPrefix(arg, "--language="):
				parsedArgs.Language = strings.TrimPrefix(arg, "--language=")
			case strings.HasPrefix(arg, "--lang="):
				parsedArgs.Language = strings.TrimPrefix(arg, "--lang=")
			case strings.HasPrefix(arg, "--backend="):
				parsedArgs.Backend = strings.TrimPrefix(arg, "--backend=")
			default:
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseAskArgs parses ask command specific arguments.
func parseAskArgs(args *Args, remaining []string) {
	var query []string

	for _, arg := range remaining {
		if !strings.HasPrefix(arg, "-") {
			query = append(query, arg)
		}
	}

	args.Query = strings.Join(query, " ")
}

// parseExportArgs parses export command specific arguments.
func parseExportArgs(args *Args, remaining []string) {
	args.Format = "text"

	i := 0
	for i < len(remaining) {
		arg := remaining[i]

		switch arg {
		case "--format", "-f":
			if i+1 < len(remaining) {
				i++
				args.Format = remaining[i]
			}
		case "--output", "-o":
			if i+1 < len(remaining) {
				i++
				args.Output = remaining[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--format="):
				args.Format = strings.TrimPrefix(arg, "--format=")
			case strings.HasPrefix(arg, "--output="):
				args.Output = strings.TrimPrefix(arg, "--output=")
			case !strings.HasPrefix(arg, "-"):
				if args.Subcommand == "" {
					args.Subcommand = arg
				}
			}
		}
		i++
	}
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = remaining[2]
		}
	}
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// HandleAsk handles the "ask" command.
// This delegates to the full implementation in ask.go.
func HandleAsk(args Args) {
	if err := HandleAskCommand(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// HandleVersion handles the "version" command.
func HandleVersion(args Args) {
	if args.JSON {
		fmt.Printf("{\"version\":%q,\"git_commit\":%q,\"build_date\":%q,\"go_version\":%q}\n",
			Version, GitCommit, BuildDate, runtime.Version())
		return
	}
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
