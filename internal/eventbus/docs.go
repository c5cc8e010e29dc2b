// Package eventbus implements the in-process event distributor: a
// topic-based publish/subscribe fan-out over named channels.
//
// Publication is fire-and-forget. Events are not persisted and there is no
// replay: a subscriber that connects after a publish never sees it, and a
// reconnecting subscriber recovers missed state by re-fetching snapshots
// through the query operations. Each subscriber drains a bounded buffer on
// its own goroutine, so a slow handler never stalls a publisher; when the
// buffer is full the event is dropped for that subscriber.
//
// A Bus is an ordinary value with an explicit lifetime, created by the
// composition root and closed on shutdown. Tests construct their own
// instances; there are no package-level singletons.
package eventbus
