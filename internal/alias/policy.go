package alias

import "time"

// Policy names the lifespan a calling product applies to new aliases.
// The anonymous landing flow and the authenticated flow share the alias
// primitive but keep independent lifespans.
type Policy struct {
	Name     string
	Lifespan time.Duration
}

// Minutes reports the lifespan in whole minutes, as exposed to clients.
func (p Policy) Minutes() int {
	return int(p.Lifespan / time.Minute)
}
