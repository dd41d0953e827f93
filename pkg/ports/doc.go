/*
Package ports defines the driven ports (interfaces) for the reel engine.

These interfaces decouple the planning core from its host: the clock that drives
playback, the randomness behind filler selection, and the sinks that carry finished
timelines to external renderers.

# Key Interfaces

  - Clock: The host-provided time source consulted on every tick.
  - RandomSource: Injectable randomness so filler runs are reproducible under a seed.
  - TimelineSink: Receives every timeline a controller emits (memory, Redis).
  - PresetSource: Serves named option presets (memory, Loam).
  - DistributedLocker: Serializes counter operations across replicas (Redis).
*/
package ports
