package parser

import (
	"context"

	"github.com/DAYGoodTime/rosu-native/internal/game"
)

type Parser interface {
	Parse(ctx context.Context, file string) (*game.Beatmap, error)
}
