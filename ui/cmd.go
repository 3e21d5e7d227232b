package ui

import (
	"chessbot/src/engine"
	"chessbot/src/engine/uci"
	"chessbot/src/game"
	"chessbot/src/logx"
	"chessbot/src/rules"
	clic "chessbot/ui/cli"
	"chessbot/ui/gui"
	"chessbot/ui/gui/gbase"
	"chessbot/ui/gui/gbase/gconf"
	"chessbot/ui/gui/gdraw"
	"chessbot/ui/gui/ghelper"
	"chessbot/ui/gui/ghelper/gdialog"
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

const logfile string = "chessbot.log"

func GetLogger(file *os.File, c *cli.Command) *logx.Logx {
	l := logx.NewLogx(
		logx.GetLoggerLevelByString(c.String("level")),
		c.Bool("dev"),
		c.Bool("console"),
	)
	l.InitLogger(file)
	return l
}

// session is everything both front-ends share
type session struct {
	logx   *logx.Logx
	cfg    *gconf.Config
	player *engine.Player
	ctrl   *game.Controller
}

func (s *session) Close() {
	if s.player != nil {
		s.player.Close()
	}
	_ = s.logx.Sync()
}

// saveSettings keeps the difficulty for the next start; only on a clean exit
func (s *session) saveSettings(file string) {
	if err := gconf.SaveDifficulty(file, s.ctrl.Difficulty()); err != nil {
		s.logx.Warnf("save config %s: %v", file, err)
		return
	}
	s.logx.Debugf("config %s saved", file)
}

func newRules(fen string) (*rules.ChessRules, error) {
	if fen == "" {
		return rules.NewChessRules(), nil
	}
	return rules.NewChessRulesFromFEN(fen)
}

func startEngine(cfg *gconf.Config, l *logx.Logx) (*engine.Player, error) {
	e := uci.NewUCIExec(l.Named("uci"), cfg.EnginePath, cfg.EngineArgs...)
	if err := e.Init(); err != nil {
		return nil, fmt.Errorf("engine %s: %w", cfg.EnginePath, err)
	}
	return engine.NewPlayer(e, l.Named("engine")), nil
}

func newSession(file *os.File, c *cli.Command) (*session, error) {
	l := GetLogger(file, c)
	s := &session{logx: l}

	cfg, err := gconf.NewGUIConfig(c.String("config"))
	if err != nil {
		return s, err
	}
	if p := c.String("engine"); p != "" {
		cfg.EnginePath = p
		cfg.EngineArgs = nil
	}
	s.cfg = cfg

	r, err := newRules(c.String("fen"))
	if err != nil {
		return s, err
	}
	if s.player, err = startEngine(cfg, l); err != nil {
		return s, err
	}
	s.ctrl = game.NewController(r, s.player, l.Named("controller"),
		game.WithDifficulty(cfg.Difficulty),
		game.WithWindowSize(cfg.WindowW, cfg.WindowH),
	)
	l.Infof("session ready: engine %s, difficulty %d", cfg.EnginePath, cfg.Difficulty)
	return s, nil
}

func openLog() (*os.File, error) {
	file, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("error open logfile: %w", err)
	}
	return file, nil
}

func RunGUI(c *cli.Command) error {
	file, err := openLog()
	if err != nil {
		return err
	}
	defer file.Close()

	// startup failures are shown in a dialog, nobody reads the console
	fail := func(l logx.Logger, err error) error {
		l.Errorf("fatal: %v", err)
		gdialog.ShowError(gbase.WindowTitle, err)
		return err
	}

	s, err := newSession(file, c)
	defer s.Close()
	if err != nil {
		return fail(s.logx, err)
	}

	assets, err := ghelper.NewGUIAssetsWorker(s.cfg.AssetsDir, s.cfg.FontPath)
	if err != nil {
		s.logx.Errorf("fatal: %v", err)
		gdialog.ShowErrorf(gbase.WindowTitle, "Cannot load images from %s:\n%v", s.cfg.AssetsDir, err)
		return err
	}
	drawer := gdraw.NewBoardDrawer(assets, gbase.PaletteFromString(s.cfg.Theme), s.cfg.Debug)
	if err := gui.NewGUI(s.ctrl, drawer, s.cfg, s.logx.Named("gui")).Run(); err != nil {
		return fail(s.logx, err)
	}
	s.saveSettings(c.String("config"))
	return nil
}

func RunCLI(c *cli.Command) error {
	file, err := openLog()
	if err != nil {
		return err
	}
	defer file.Close()

	s, err := newSession(file, c)
	defer s.Close()
	if err != nil {
		s.logx.Errorf("fatal: %v", err)
		return err
	}

	clic.EnableANSI()
	if err := clic.NewCLI(s.ctrl, clic.PrintBoard, s.logx.Named("cli")).RunLineMode(); err != nil {
		s.logx.Errorf("fatal: %v", err)
		return err
	}
	s.saveSettings(c.String("config"))
	return nil
}

func RunChessBot() error {
	lf := &cli.StringFlag{
		Name:    "level",
		Aliases: []string{"l"},
		Value:   "info",
		Usage:   "logger level (debug, info, warn, error)",
	}
	df := &cli.BoolFlag{
		Name:    "dev",
		Aliases: []string{"d"},
		Usage:   "development logger encoding",
	}
	cf := &cli.BoolFlag{
		Name:    "console",
		Aliases: []string{"c"},
		Usage:   "console logger encoding to stdout",
	}
	conf := &cli.StringFlag{
		Name:  "config",
		Value: gconf.DefaultFile,
		Usage: "path to JSON config",
	}
	ef := &cli.StringFlag{
		Name:  "engine",
		Usage: "UCI engine executable, overrides the config",
	}
	ff := &cli.StringFlag{
		Name:  "fen",
		Usage: "start from this position instead of the initial one",
	}
	flags := []cli.Flag{lf, df, cf, conf, ef, ff}

	return (&cli.Command{
		Name:  "chessbot",
		Usage: "play chess against a UCI engine",
		Flags: flags,
		Commands: []*cli.Command{
			{
				Name:  "gui",
				Usage: "desktop window (default)",
				Flags: flags,
				Action: func(ctx context.Context, c *cli.Command) error {
					return RunGUI(c)
				},
			},
			{
				Name:  "cli",
				Usage: "play in the terminal",
				Flags: flags,
				Action: func(ctx context.Context, c *cli.Command) error {
					return RunCLI(c)
				},
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return RunGUI(c)
		},
	}).Run(context.Background(), os.Args)
}
