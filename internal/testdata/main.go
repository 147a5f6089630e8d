package testdata

import (
	_ "embed"
	"os"
	"path/filepath"
)

var (
	//go:embed std.osu
	Std string
	//go:embed taiko.osu
	Taiko string
	//go:embed catch.osu
	Catch string
	//go:embed mania.osu
	Mania string
)

// The std fixture's expected shape.
const (
	StdCircles  = 104
	StdSliders  = 16
	StdSpinners = 1
	StdMaxCombo = 141
)

// WriteMap writes content to dir/name and returns the full path.
func WriteMap(dir, name, content string) (string, error) {
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); nil != err {
		return "", err
	}
	return p, nil
}
