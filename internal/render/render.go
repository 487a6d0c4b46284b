// Package render is a placeholder home for the graphical rendering
// collaborator hinted at by the CLI's grid/ppu/zoom flags. Rendering itself
// is out of scope for this module; Options only records validated flag
// values so a future renderer has somewhere concrete to read them from.
package render

// GridPosition is the valid set of values for the --grid-position flag.
type GridPosition string

const (
	GridTop    GridPosition = "top"
	GridBottom GridPosition = "bottom"
	GridNone   GridPosition = "none"
)

// Options holds the validated, otherwise inert rendering flags accepted by
// the CLI. Nothing in this module reads them back; they exist so the
// rendering collaborator described by spec.md has a concrete struct to
// receive once it exists.
type Options struct {
	GridSize     int
	GridFine     int
	GridPosition GridPosition
	PPU          int
	Zoom         int
}

// Default returns the flag defaults spec.md's CLI section documents.
func Default() Options {
	return Options{GridSize: 4, GridFine: 1, GridPosition: GridTop, PPU: 8, Zoom: 1}
}
