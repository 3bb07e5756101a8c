/*
Package runner drives the terminal console from a line-oriented stream.

It is the bridge between the console state machine and the outside world
when no full-screen terminal is available: piped input, scripts and
tests. Input and output go through pluggable handlers; the optional video
player is started and stopped as the console reports it.

# Key Components

  - Runner: reads lines, feeds the console and publishes its events.
  - IOHandler: decouples how lines arrive and how events are shown.
  - TextHandler: plain or Markdown-rendered text, one prompt per line.
  - JSONHandler: NDJSON events out, JSON strings or raw lines in.

# Usage

	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
		runner.WithPlayer(player),
	)

	if err := r.Run(ctx, console.New()); err != nil {
		log.Fatal(err)
	}
*/
package runner
