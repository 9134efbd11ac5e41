package model

type Move struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Ply is a move that has been played, with what it captured.
type Ply struct {
	Piece         Piece    `json:"piece"`
	From          Position `json:"from"`
	To            Position `json:"to"`
	CapturedPiece *Piece   `json:"capturedPiece"`
}

type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

type ClickResultKind string

const (
	// ResultNone means the click changed nothing.
	ResultNone       ClickResultKind = "none"
	ResultSelected   ClickResultKind = "selected"
	ResultDeselected ClickResultKind = "deselected"
	ResultMoved      ClickResultKind = "moved"
)

// ClickResult tells the presentation layer what to redraw after a click.
type ClickResult struct {
	Kind ClickResultKind `json:"kind"`
	// Highlights holds the legal destinations when Kind is ResultSelected.
	Highlights []Position `json:"highlights,omitempty"`
	// Ply is set when Kind is ResultMoved.
	Ply *Ply `json:"ply,omitempty"`
}
