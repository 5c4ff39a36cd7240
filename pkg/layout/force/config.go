package force

// Config selects and tunes the forces of a force engine. A nil member
// leaves that force out entirely, which is not the same as installing
// it with zero strength. Start from [DefaultConfig] and override; the
// engine copies each force per resync, so one Config can serve many
// engines.
type Config struct {
	// InitialIterations ticks run synchronously during a resync, before
	// the first frame is published. Zero shows the raw seeding.
	InitialIterations int

	// AutoRestart resumes asynchronous stepping after a resync. When
	// off, a resync only runs its initial iterations and parks.
	// Reset and Relayout always restart.
	AutoRestart bool

	Center   *Center
	Collide  *Collide
	Link     *Link
	ManyBody *ManyBody
	X        *X
	Y        *Y
	Radial   *Radial
}

// DefaultConfig enables the standard trio for an organic layout: charge
// repulsion, edge springs, and recentering. Edges are wired in by the
// engine at resync time.
func DefaultConfig() Config {
	return Config{
		AutoRestart: true,
		Center:      NewCenter(),
		Link:        NewLink(nil),
		ManyBody:    NewManyBody(),
	}
}
