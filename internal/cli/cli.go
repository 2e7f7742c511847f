// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Version information (overridden at build time with -ldflags)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command is the command to run.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdHistory
	CmdLang
	CmdConfig
	CmdStatus
	CmdVersion
	CmdHelp
)

func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdAsk:
		return "ask"
	case CmdChat:
		return "chat"
	case CmdHistory:
		return "history"
	case CmdLang:
		return "lang"
	case CmdConfig:
		return "config"
	case CmdStatus:
		return "status"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	}
	return "unknown"
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet      bool
	Verbose    bool
	JSON       bool
	NoColor    bool
	ConfigPath string

	// Command-specific
	Subcommand string
	Query      string
	Image      string

	// Arguments after the command name
	Raw []string
}

const usageText = `pestcheck - pest detection assistant for the terminal

Describe what you see on your crop, attach a photo, and get the likely pest,
how sure the model is and how severe the damage looks.

Usage:
  pestcheck                      Start the TUI (default)
  pestcheck ask "text"           Ask one question and print the reply
    -i, --image PATH             Attach a photo (jpeg, png, webp, gif)
    -                            Read the question from stdin
  pestcheck chat                 Line-mode chat (history, /image, /clear)
  pestcheck history show         Print the saved conversation
    --limit N                    Only the last N entries
  pestcheck history clear        Delete the saved conversation
  pestcheck history export       Export the conversation
    --format md|json             Export format (default: md)
    --output FILE                Write to FILE instead of stdout
  pestcheck lang show            Show the active language
  pestcheck lang set CODE        Set the language (en, hi, ta, te)
  pestcheck lang reset           Forget the language choice (picker shows again)
  pestcheck lang list            List supported languages
  pestcheck config show          Show the effective configuration
  pestcheck config get KEY       Print one value (e.g. server.base_url)
  pestcheck config set KEY VAL   Change one value and save
  pestcheck config path          Print the config file location
  pestcheck status, s            Check that the analysis service is reachable
  pestcheck version              Show version information
  pestcheck help                 Show this help

Global Flags:
  --config PATH    Use this config file (.toml or .json)
  --json           Machine-readable output
  --no-color       Disable colors (NO_COLOR is honored too)
  -q, --quiet      Minimal output
  -v, --verbose    Debug logging

Environment:
  PESTCHECK_BASE_URL, PESTCHECK_TIMEOUT_SECS, PESTCHECK_DATA_DIR,
  PESTCHECK_LOG_LEVEL, PESTCHECK_LOG_FILE, PESTCHECK_CAPTURE_DIR,
  PESTCHECK_CAPTURE_MAX_BYTES, PESTCHECK_THEME, PESTCHECK_RENDER_MARKDOWN
  A .env file in the working directory is read first.

Examples:
  pestcheck ask "small green insects under the leaves"
  pestcheck ask --image ~/DCIM/leaf.jpg "is this blight?"
  pestcheck config set capture.dir ~/Sync/Camera
  pestcheck lang set ta

Version: %s
`

// PrintUsage writes the help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "pestcheck version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Parse parses argv (without the program name).
func Parse(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)
	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	args.Raw = remaining
	if len(remaining) > 0 {
		args.Subcommand = strings.ToLower(remaining[0])
	}

	switch cmd {
	case "tui":
		return CmdTUI, args
	case "ask", "a":
		parseAskArgs(&args, remaining)
		return CmdAsk, args
	case "chat":
		return CmdChat, args
	case "history", "hist":
		return CmdHistory, args
	case "lang", "language":
		return CmdLang, args
	case "config", "cfg":
		return CmdConfig, args
	case "status", "s":
		return CmdStatus, args
	case "version", "--version":
		return CmdVersion, args
	case "help", "-h", "--help":
		return CmdHelp, args
	}

	// Anything else is a question: `pestcheck "aphids on my okra"`.
	parseAskArgs(&args, append([]string{cmd}, remaining...))
	return CmdAsk, args
}

// parseGlobalFlags extracts global flags and returns what is left.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var remaining []string
	var args Args

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch arg {
		case "-q", "--quiet":
			args.Quiet = true
		case "-v", "--verbose":
			args.Verbose = true
		case "--json":
			args.JSON = true
		case "--no-color":
			args.NoColor = true
		case "--config":
			if i+1 < len(argv) {
				i++
				args.ConfigPath = argv[i]
			}
		default:
			if v, ok := strings.CutPrefix(arg, "--config="); ok {
				args.ConfigPath = v
			} else {
				remaining = append(remaining, arg)
			}
		}
	}
	return remaining, args
}

// parseAskArgs pulls --image out and joins the rest into the question.
func parseAskArgs(args *Args, remaining []string) {
	var query []string
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]
		switch arg {
		case "-i", "--image":
			if i+1 < len(remaining) {
				i++
				args.Image = remaining[i]
			}
		default:
			if v, ok := strings.CutPrefix(arg, "--image="); ok {
				args.Image = v
			} else {
				query = append(query, arg)
			}
		}
	}
	args.Query = strings.Join(query, " ")
	args.Subcommand = ""
}
