package game

import (
	"chessbot/src/base"
	"chessbot/src/view"
	"fmt"
)

// Action is one semantic input applied by Controller.HandleAction.
type Action interface {
	fmt.Stringer
	isAction()
}

type SelectSquare struct {
	Square base.Square
}

type ClickButton struct {
	Button view.ButtonID
}

// X is a window pixel column; it is mapped over the current slider track.
type DragSlider struct {
	X int
}

type SetDifficulty struct {
	Value int
}

type Resize struct {
	W, H int
}

type Quit struct{}

func (SelectSquare) isAction()  {}
func (ClickButton) isAction()   {}
func (DragSlider) isAction()    {}
func (SetDifficulty) isAction() {}
func (Resize) isAction()        {}
func (Quit) isAction()          {}

func (a SelectSquare) String() string  { return "select " + a.Square.String() }
func (a ClickButton) String() string   { return "click " + a.Button.String() }
func (a DragSlider) String() string    { return fmt.Sprintf("slider x=%d", a.X) }
func (a SetDifficulty) String() string { return fmt.Sprintf("difficulty %d", a.Value) }
func (a Resize) String() string        { return fmt.Sprintf("resize %dx%d", a.W, a.H) }
func (Quit) String() string            { return "quit" }
