// Command selfplay lets the engine play a full game against itself and
// prints every position.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iamasit07/4-in-a-row-negamax/internal/domain"
	"github.com/iamasit07/4-in-a-row-negamax/internal/service/bot"
)

var (
	yellowDepth int
	redDepth    int
	trace       bool
)

func init() {
	flag.IntVar(&yellowDepth, "yellow", bot.DefaultDepth, "search depth for yellow")
	flag.IntVar(&redDepth, "red", bot.DefaultDepth, "search depth for red")
	flag.BoolVar(&trace, "trace", false, "log every searched position")

	flag.Parse()
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := zap.NewDevelopmentConfig()
	if !trace {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	engine := bot.NewEngine(logger.Sugar())
	depths := map[domain.Color]int{domain.Yellow: yellowDepth, domain.Red: redDepth}

	board := domain.NewBoard()
	for board.Status() == domain.StatusActive {
		color := board.ToMove()

		next, err := engine.ChooseMove(board, color, depths[color])
		if errors.Is(err, bot.ErrNoMove) {
			fmt.Printf("%s has no move at depth %d\n", color, depths[color])
			return nil
		}
		if err != nil {
			return fmt.Errorf("move %d: %w", board.MoveCount()+1, err)
		}
		board = next

		fmt.Printf("Move %d, %s:\n%s\n", board.MoveCount(), color, board.Render("  "))
	}

	if win := board.CheckWin(); win.Won {
		fmt.Printf("%s wins with %v\n", win.Color, win.Cells)
		return nil
	}
	fmt.Println("Draw")
	return nil
}
