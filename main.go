package main

import (
	"chessbot/ui"
	"fmt"
	"os"
)

func main() {
	if err := ui.RunChessBot(); err != nil {
		fmt.Fprintf(os.Stderr, "chessbot: %v\n", err)
		os.Exit(1)
	}
}
