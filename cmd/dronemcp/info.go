package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	var opencode, claude, cursor bool

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print general info, or MCP client configuration snippets",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case opencode:
				printOpenCodeConfig()
			case claude:
				printClaudeConfig()
			case cursor:
				printCursorConfig()
			default:
				printGeneralInfo()
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&opencode, "opencode", false, "show OpenCode MCP client configuration")
	cmd.Flags().BoolVar(&claude, "claude", false, "show Claude Desktop MCP client configuration")
	cmd.Flags().BoolVar(&cursor, "cursor", false, "show Cursor MCP client configuration")
	return cmd
}

func printGeneralInfo() {
	fmt.Fprintf(os.Stdout, `dronemcp %s — MCP control plane for a drone fleet

dronemcp is a Model Context Protocol (MCP) server that lets an AI agent
fly a fleet of drones, either through free-text commands ("ドローンAAに
接続して", "move forward 2m") or typed tool calls with structured
parameters. Every dispatch, parsed or typed, passes through the same
precondition gate before it reaches the backend.

TRANSPORT MODES

  stdio (default)
    Communicates over stdin/stdout using JSON-RPC 2.0. Used when launched
    as a subprocess by an MCP client. No credentials required locally —
    the backend URL is the only required configuration.

TOOLS (21)

  Control (14):  connect_drone, disconnect_drone, takeoff, land, move,
                 rotate, set_altitude, emergency_stop, take_photo,
                 start_streaming, stop_streaming, detect, start_tracking,
                 stop_tracking
  Query (5):     get_drones, get_drone_status, get_system_status,
                 health_check, scan_drones
  Natural language (1): execute_natural_language_command
  Batch (1):     execute_batch

PROMPTS (1)

  dronemcp-guide   Orientation to the natural-language path, the typed
                   tool surface, and the safety precondition gate

RESOURCES (4)

  drone://available    Live list of known drones
  drone://status/{id}  Live status for one drone
  system://status      Overall backend/fleet health
  system://logs        Recent server log lines

GETTING STARTED

  1. Point dronemcp at a backend:   DRONEMCP_BACKEND_URL, or backend.url
                                     in dronemcp.toml
  2. Discover drones:               scan_drones, then get_drones
  3. Connect and fly:               connect_drone → takeoff → move /
                                     rotate / take_photo → land

CLIENT CONFIGURATION

  To see configuration for a specific MCP client, run:

    dronemcp info --opencode    OpenCode (.opencode.json)
    dronemcp info --claude      Claude Desktop (claude_desktop_config.json)
    dronemcp info --cursor      Cursor (.cursor/mcp.json)
`, Version)
}

func printOpenCodeConfig() {
	printStdioConfig("OpenCode", ".opencode.json or opencode.json", `{
  "mcpServers": {
    "dronemcp": {
      "command": "dronemcp",
      "args": ["serve"],
      "env": {
        "DRONEMCP_BACKEND_URL": "http://your-drone-backend:8000"
      }
    }
  }
}`)
}

func printClaudeConfig() {
	printStdioConfig("Claude Desktop", "claude_desktop_config.json", `{
  "mcpServers": {
    "dronemcp": {
      "command": "dronemcp",
      "args": ["serve"],
      "env": {
        "DRONEMCP_BACKEND_URL": "http://your-drone-backend:8000"
      }
    }
  }
}`)
}

func printCursorConfig() {
	printStdioConfig("Cursor", ".cursor/mcp.json", `{
  "mcpServers": {
    "dronemcp": {
      "command": "dronemcp",
      "args": ["serve"],
      "env": {
        "DRONEMCP_BACKEND_URL": "http://your-drone-backend:8000"
      }
    }
  }
}`)
}

func printStdioConfig(client, file, config string) {
	fmt.Fprintf(os.Stdout, `%s — stdio mode
%s

Add to %s:

%s

dronemcp runs as a subprocess — no server or credentials needed beyond
reaching the drone backend.

`, client, strings.Repeat("─", len(client)+14), file, config)
}
