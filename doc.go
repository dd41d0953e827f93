/*
Package reel is a slot-machine counter animation engine.

It turns "old value, new value and options" into a per-slot reel: every character position
scrolls through a run of filler characters before landing on its target, with the slots
started together, one after another, or in waves grouped by their result.

# Concept

reel does not draw anything. A Counter plans sessions and keeps the currently displayed
tokens; the host drives it with a clock (Tick) and hands the resulting frames, or the
finished per-slot timeline, to whatever renders them: a terminal, an HTTP client, a
browser behind Server-Sent Events, or a Redis subscriber.

# Key Features

  - Odometer alignment: text values align from the right, opaque units from the left.
  - Three timing modes: simultaneous, sequential and sequential by result.
  - Supersession: a new value mid-animation restarts from whatever is on screen.
  - Reproducible filler: inject a seeded random source and a mock clock in tests.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"
		"time"

		"github.com/aretw0/reel"
		"github.com/aretw0/reel/pkg/domain"
	)

	func main() {
		ctx := context.Background()

		counter, err := reel.New("score", domain.Options{Value: 0})
		if err != nil {
			log.Fatal(err)
		}

		// A value change starts a session; Tick advances it.
		if err := counter.SetValue(ctx, 1250); err != nil {
			log.Fatal(err)
		}
		for {
			frame := counter.Tick(ctx)
			fmt.Printf("\r%s", frame.Text())
			if frame.Done {
				break
			}
			time.Sleep(time.Second / 30)
		}
	}
*/
package reel
