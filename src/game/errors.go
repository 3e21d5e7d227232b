package game

import "errors"

var (
	ErrNoOracle          = errors.New("no move oracle configured")
	ErrOracleFailed      = errors.New("move oracle failed")
	ErrIllegalOracleMove = errors.New("move oracle returned an illegal move")
)
