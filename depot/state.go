package depot

// State is the depot's process-wide state: its own identity plus the
// inventory and neighbour table shared by every session and by the
// signal watcher. Pass a *State into each session rather than reaching
// for package-level globals.
type State struct {
	SelfName   string
	ListenPort Port

	Inventory  *Inventory
	Neighbours *Neighbours
}

// NewState builds process-wide state for a depot named name listening
// on port, with an empty inventory and neighbour table.
func NewState(name string, port Port) *State {
	return &State{
		SelfName:   name,
		ListenPort: port,
		Inventory:  NewInventory(),
		Neighbours: NewNeighbours(),
	}
}
