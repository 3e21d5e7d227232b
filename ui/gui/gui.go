package gui

import (
	"chessbot/src/game"
	"chessbot/src/input"
	"chessbot/src/logx"
	"chessbot/src/view"
	"chessbot/ui/gui/gbase"
	"chessbot/ui/gui/gbase/gconf"
	"chessbot/ui/gui/gdraw"
	"chessbot/ui/gui/ghelper/gclipboard"
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type GUIProcessing struct {
	ctrl   *game.Controller
	disp   *input.Dispatcher
	drawer *gdraw.BoardDrawer
	cfg    *gconf.Config
	logx   logx.Logger

	// window events noticed in Layout, dispatched in the next Update
	pending      []input.Event
	outW, outH   int
	lastX, lastY int
	lastTick     time.Time
}

func NewGUI(ctrl *game.Controller, drawer *gdraw.BoardDrawer, cfg *gconf.Config, logx logx.Logger) *GUIProcessing {
	return &GUIProcessing{
		ctrl:     ctrl,
		disp:     input.NewDispatcher(ctrl),
		drawer:   drawer,
		cfg:      cfg,
		logx:     logx,
		lastX:    -1,
		lastY:    -1,
		lastTick: time.Now(),
	}
}

func (gp *GUIProcessing) Run() error {
	ebiten.SetWindowSize(gp.cfg.WindowW, gp.cfg.WindowH)
	ebiten.SetWindowTitle(gbase.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(view.MinWindowW, view.MinWindowH, -1, -1)
	ebiten.SetWindowClosingHandled(true)

	err := ebiten.RunGame(gp)
	if errors.Is(err, gbase.ErrExit) {
		return nil
	}
	return err
}

// pollEvents turns this tick's raw input into dispatcher events, in order.
func (gp *GUIProcessing) pollEvents() []input.Event {
	evs := gp.pending
	gp.pending = nil

	if ebiten.IsWindowBeingClosed() {
		evs = append(evs, input.Event{Kind: input.Close})
	}

	mx, my := ebiten.CursorPosition()
	if mx != gp.lastX || my != gp.lastY {
		evs = append(evs, input.Event{Kind: input.PointerMove, X: mx, Y: my})
		gp.lastX, gp.lastY = mx, my
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		evs = append(evs, input.Event{Kind: input.PointerDown, X: mx, Y: my})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		evs = append(evs, input.Event{Kind: input.PointerUp, X: mx, Y: my})
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		step := 1
		if dy < 0 {
			step = -1
		}
		evs = append(evs, input.Event{Kind: input.Wheel, X: mx, Y: my, DY: step})
	}
	return evs
}

func (gp *GUIProcessing) Update() error {
	now := time.Now()
	dt := now.Sub(gp.lastTick).Seconds()
	gp.lastTick = now

	for _, ev := range gp.pollEvents() {
		if a, ok := gp.disp.Dispatch(ev); ok {
			gp.ctrl.HandleAction(a)
		}
	}
	if gp.ctrl.QuitRequested() {
		gp.logx.Info("window closed")
		return gbase.ErrExit
	}

	if ctrlPressed() && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		gp.copyFEN()
	}

	mx, my := ebiten.CursorPosition()
	gp.drawer.Animate(gp.ctrl.Layout(), mx, my,
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft), dt)

	// one AI ply per frame so every move gets drawn
	if err := gp.ctrl.DriveOracleIfNeeded(); err != nil {
		gp.logx.Errorf("oracle: %v", err)
		return err
	}
	return nil
}

func (gp *GUIProcessing) copyFEN() {
	fen := gp.ctrl.FEN()
	if err := gclipboard.WriteAll(fen); err != nil {
		gp.logx.Warnf("copy FEN: %v", err)
		return
	}
	gp.logx.Infof("FEN copied: %s", fen)
}

func ctrlPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

func (gp *GUIProcessing) Draw(screen *ebiten.Image) {
	gp.drawer.Draw(screen, gp.ctrl.Layout())
}

// Layout runs before Update each tick; size changes become Resize events.
func (gp *GUIProcessing) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	if outsideWidth != gp.outW || outsideHeight != gp.outH {
		gp.outW, gp.outH = outsideWidth, outsideHeight
		gp.pending = append(gp.pending, input.Event{Kind: input.Resize, W: outsideWidth, H: outsideHeight})
	}
	return outsideWidth, outsideHeight
}
