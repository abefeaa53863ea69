// Package cmd provides helpers for executing shell commands with proper error handling.
//
// These helpers wrap [os/exec.CommandContext] to capture stderr and use it as
// the error message, making command failures more informative for users.
// Every invocation is bound to a context, so cancelling a scan kills the
// git processes it spawned instead of waiting for them.
//
// # Usage
//
//	if err := cmd.RunContext(ctx, repoPath, "git", "fetch", "origin"); err != nil {
//	    // err contains git's stderr output if available
//	    return fmt.Errorf("fetch origin: %w", err)
//	}
//
//	// For commands that return output:
//	out, err := cmd.OutputContext(ctx, repoPath, "git", "status", "--porcelain=v1")
//
// Commands are echoed with their duration when the logger attached to ctx is
// verbose (see [log.Logger.Command]).
//
// # Design Notes
//
// gitoverit shells out to the git CLI rather than using a Go git library.
// This keeps behavior identical to what users see in their terminal,
// including their ignore rules, credential helpers and SSH configuration.
package cmd
