// Package shutdown ties a command's context to process termination signals.
//
// Usage:
//
//	ctx, cancel := shutdown.WithSignals(context.Background())
//	defer cancel()
//	app.RunContext(ctx, os.Args)
//
// The first SIGINT or SIGTERM cancels ctx so in-flight requests and the
// interactive loop wind down; a second one terminates the process.
package shutdown
