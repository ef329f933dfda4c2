package runtime

import "time"

// State bundles every piece of in-memory coordination state. It is
// constructed once at process start and passed by reference into
// every handler, so a future swap to a shared external store touches
// one seam.
type State struct {
	Registry *Registry
	Presence *PresenceDirectory
	Typing   *TypingCoordinator
	Huddles  *HuddleRelay
	Canvas   *CanvasRelay
}

func NewState(typingTTL time.Duration) *State {
	return &State{
		Registry: NewRegistry(),
		Presence: NewPresenceDirectory(),
		Typing:   NewTypingCoordinator(typingTTL),
		Huddles:  NewHuddleRelay(),
		Canvas:   NewCanvasRelay(),
	}
}
