/*
Package planner turns an old value, a new value and the counter options into a fully
scheduled animation session.

It runs three stages in order:

  - Align pairs the old and new tokens position by position, padding the shorter side.
  - Builder draws the filler run each animating slot scrolls through.
  - Schedule assigns start offsets and durations according to the timing mode.

Planner composes the stages and is the only entry point the controller uses.
*/
package planner
