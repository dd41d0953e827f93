/*
Package session hosts many independent counters keyed by ID.

Every counter owns its own state; the manager only guarantees that operations on one ID
never interleave, optionally across replicas through a distributed locker. Locks are
reference counted and dropped as soon as nobody holds them.
*/
package session
