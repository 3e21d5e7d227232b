package engine

import (
	"chessbot/src/base"
	"chessbot/src/logx"
	"errors"
	"fmt"
)

// Player answers move requests with a single search on an initialized
// Engine. One request at a time.
type Player struct {
	eng  Engine
	logx logx.Logger
}

func NewPlayer(eng Engine, l logx.Logger) *Player {
	return &Player{eng: eng, logx: l}
}

func (p *Player) BestMove(fen string, difficulty int) (base.Move, error) {
	if err := p.eng.SetPositionFEN(fen); err != nil {
		return base.Move{}, fmt.Errorf("set position: %w", err)
	}

	params := DifficultyToParams(difficulty)
	if err := p.eng.StartAnalysis(params); err != nil {
		return base.Move{}, fmt.Errorf("start search: %w", err)
	}

	if err := p.eng.WaitDone(SearchTimeout(params)); err != nil {
		if errors.Is(err, ErrTimeout) {
			// past movetime plus grace the engine may be hung: ask for whatever
			// it has and give it one more chance
			p.logx.Warnf("engine ignored movetime %dms, sending stop", params.MaxTimeMs)
			if serr := p.eng.StopAnalysis(); serr != nil {
				return base.Move{}, fmt.Errorf("stop search: %w", serr)
			}
			err = p.eng.WaitDone(StopAnalyzeTimeout)
		}
		if err != nil {
			return base.Move{}, fmt.Errorf("wait bestmove: %w", err)
		}
	}

	info := p.eng.BestNow()
	mv, err := info.GetBestMove()
	if err != nil {
		return base.Move{}, err
	}
	p.logx.Infof("engine move %s (depth %d, cp %d, mate %d, nodes %d)",
		mv, info.Depth, info.ScoreCP, info.MateIn, info.Nodes)
	return mv, nil
}

func (p *Player) Close() {
	p.eng.Close()
}
