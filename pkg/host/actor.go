package host

// ActorKind distinguishes players from NPCs
type ActorKind string

const (
	ActorPlayer ActorKind = "player"
	ActorNPC    ActorKind = "npc"
)

// Actor is a live entity as reported by the game client.
// ID is unique per live instance, not per name.
type Actor struct {
	ID    int       `json:"id"`
	Name  string    `json:"name,omitempty"`
	Kind  ActorKind `json:"kind"`
	Local bool      `json:"local,omitempty"`
}

// IsNPC reports whether a is a non-nil NPC
func (a *Actor) IsNPC() bool {
	return a != nil && a.Kind == ActorNPC
}

// IsLocal reports whether a is the local player (the observer)
func (a *Actor) IsLocal() bool {
	return a != nil && a.Kind == ActorPlayer && a.Local
}
