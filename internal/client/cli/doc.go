// Package cli implements taskctl, the command-line client of the task
// manager API.
//
// A single command can be given on the command line:
//
//	taskctl [-a url] [-f session.db] register <name> <email> [age]
//	taskctl login <email>
//	taskctl list --completed=false --sort createdAt:desc
//
// Without a command an interactive prompt is started that accepts the same
// commands line by line. The bearer token returned by register and login is
// kept in the session database so later invocations are authenticated.
package cli
