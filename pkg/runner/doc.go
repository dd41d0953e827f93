/*
Package runner implements the host clock loop that plays a counter to completion.

It acts as the bridge between a counter (which never blocks and only advances when ticked)
and the outside world. The runner ticks at a fixed frame rate, hands every frame to a
pluggable handler, and stops when the session is done or the context is cancelled.

# Key Components

  - Runner: The frame loop. Cancellation snaps the counter to its target before returning.
  - FrameHandler: Decouples how frames are presented (terminal text, JSON lines).
  - TextHandler: Redraws the current frame in place on a terminal line.
  - JSONHandler: Emits one JSON object per frame for machine consumers.
  - SignalManager: Turns Ctrl+C into context cancellation.

# Usage

	r := runner.NewRunner(
		runner.WithHandler(runner.NewTextHandler(os.Stdout)),
		runner.WithFrameRate(30),
	)

	if err := counter.SetValue(ctx, 1250); err != nil {
		log.Fatal(err)
	}
	if err := r.Run(ctx, counter); err != nil {
		log.Fatal(err)
	}
*/
package runner
