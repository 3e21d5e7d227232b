package engine

import (
	"chessbot/src/base"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoMove     = errors.New("engine has no move")
	ErrTimeout    = errors.New("engine search timed out")
	ErrTerminated = errors.New("engine process terminated")
	ErrNotRunning = errors.New("no running engine process")
	ErrBusy       = errors.New("engine search already running")
)

type AnalysisInfo struct {
	Depth    int      // last reported depth
	TimeMs   int64    // elapsed search time in ms
	Nodes    int64    // nodes searched
	NPS      int64    // nodes per second
	ScoreCP  int      // centipawns, + is good for the side to move
	MateIn   int      // mate in N moves, 0 if none
	PV       []string // principal variation in UCI notation
	BestMove string   // from "bestmove", empty until the search ends
}

type SearchParams struct {
	MaxDepth  int   // 0 = no depth limit
	MaxTimeMs int64 // 0 = no time limit
	Infinite  bool  // search until StopAnalysis()
}

const (
	UCIHandshakeTimeout = 2 * time.Second  // uci / isready
	UCIBestMoveTimeout  = 30 * time.Second // go without movetime
	UCIBestMoveGrace    = 2 * time.Second  // on top of movetime
	StopAnalyzeTimeout  = 5 * time.Second
	CloseGracePeriod    = 2 * time.Second
)

type Engine interface {
	Init() error
	SetPositionFEN(fen string) error
	StartAnalysis(params SearchParams) error
	StopAnalysis() error
	BestNow() AnalysisInfo
	WaitDone(timeout time.Duration) error
	Close()
}

// GetBestMove parses the final answer of a search. "(none)" and "0000" mean
// the engine sees no legal move.
func (i AnalysisInfo) GetBestMove() (base.Move, error) {
	bm := i.BestMove
	if bm == "" && len(i.PV) > 0 {
		bm = i.PV[0]
	}
	switch bm {
	case "", "(none)", "0000":
		return base.Move{}, ErrNoMove
	}
	mv, err := base.ParseUCIMove(bm)
	if err != nil {
		return base.Move{}, fmt.Errorf("bad engine move %q: %w", bm, err)
	}
	return mv, nil
}

// DifficultyToParams turns the 1..50 slider value into a search budget: the
// value is the depth limit and the time grows with it.
func DifficultyToParams(d int) SearchParams {
	d = base.ClampDifficulty(d)
	return SearchParams{
		MaxDepth:  d,
		MaxTimeMs: 250 + 150*int64(d),
	}
}

// SearchTimeout is how long to wait for "bestmove" before giving up.
func SearchTimeout(p SearchParams) time.Duration {
	if p.Infinite {
		return StopAnalyzeTimeout
	}
	if p.MaxTimeMs <= 0 {
		return UCIBestMoveTimeout
	}
	return time.Duration(p.MaxTimeMs)*time.Millisecond + UCIBestMoveGrace
}
