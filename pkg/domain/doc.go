/*
Package domain contains the core domain models of the reel animation engine.

It defines the fundamental entities that flow through planning: tokens, value
sequences, slot plans, sessions and the timeline handed to renderers. This package
is kept pure and free of external dependencies like I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - Token: One classified character position (Digit, Letter, Separator, Opaque or Blank).
  - ValueSequence: The ordered tokens produced by tokenizing one value.
  - SlotPlan: One reel position with its filler run and timing.
  - Session: One playback instance aggregating the slot plans.
  - Timeline: The finished per-slot schedule an external renderer turns into pixels.
  - Options / Overrides: The declarative configuration of a counter and per-call replay overrides.
*/
package domain
