// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the board HTTP API server.
//
// # Subcommands
//
//   - serve   : Runs the HTTP server (default when no subcommand is given).
//   - migrate : Applies, rolls back or reports database migrations.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import "github.com/taibuivan/yomira-board/cmd/api/cmd"

func main() {
	cmd.Execute()
}
