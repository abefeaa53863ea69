// Package git provides git operations via shell commands.
//
// All operations use [os/exec.CommandContext] to call the git CLI directly
// rather than using Go git libraries. This keeps results identical to what
// the user sees in a shell (SSH keys, credential helpers, config) and makes
// every query a separate process that a cancelled context can kill.
//
// # Status
//
//   - [Status], [ParseStatus]: porcelain v1 status with branch header
//   - [InProgress]: merge, rebase, cherry-pick, revert or bisect in progress
//   - [StashCount], [DiffTotals]: stash entries and changed line totals
//   - [SubmoduleCount]: submodules declared in .gitmodules
//
// # Repository Queries
//
//   - [LastCommit], [ShortHead], [GitDir], [RefExists]
//   - [Remotes], [BranchRemote], [RemoteURLs], [Fetch]
//   - [ListFiles]: tracked (and optionally untracked) files
//   - [SimplifyURL]: short display form of a remote URL
//
// # Discovery Support
//
//   - [ClassifyMarker]: tell repositories, linked worktrees and submodules apart
//   - [IsIgnored]: ask the enclosing repository whether a path is ignored
package git
