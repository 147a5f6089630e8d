package config

import (
	"github.com/DAYGoodTime/rosu-native/internal/game"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.1.0"

// Config is the command line of ppcalc. Combo and MaxCombo are -1 when
// unset, meaning the beatmap's max combo.
type Config struct {
	Beatmap  string
	Mods     game.Mods
	Accuracy float64
	Misses   int
	Combo    int
	MaxCombo int
	Cache    string
	JSON     bool
	Verbose  bool
}

// Parse reads args, without the program name.
func Parse(args []string) (*Config, error) {
	app := kingpin.New("ppcalc", "Calculate osu! performance points for a beatmap.")
	app.Version(Version)

	beatmap := app.Arg("beatmap", "Path to the .osu file").Required().ExistingFile()
	mods := app.Flag("mods", "Mods as a bitmask or acronyms, e.g. HDHR").Default("0").Short('m').String()
	acc := app.Flag("acc", "Accuracy as a fraction, or a percentage when above 1").Default("1").Short('a').Float64()
	miss := app.Flag("miss", "Number of misses").Default("0").Short('x').Uint()
	combo := app.Flag("combo", "Combo reached, defaults to the max combo").Default("-1").Short('c').Int()
	maxCombo := app.Flag("max-combo", "Combo the full combo estimate uses, defaults to the beatmap's").Default("-1").Short('C').Int()
	cache := app.Flag("cache", "Sqlite file to cache difficulty attributes in").String()
	asJSON := app.Flag("json", "Print the result as JSON").Bool()
	verbose := app.Flag("verbose", "Log to stderr").Short('v').Bool()

	if _, err := app.Parse(args); nil != err {
		return nil, err
	}

	m, err := game.ParseMods(*mods)
	if nil != err {
		return nil, errors.Wrap(err, "--mods")
	}
	a := *acc
	if a > 1 {
		a /= 100
	}
	return &Config{
		Beatmap:  *beatmap,
		Mods:     m,
		Accuracy: a,
		Misses:   int(*miss),
		Combo:    *combo,
		MaxCombo: *maxCombo,
		Cache:    *cache,
		JSON:     *asJSON,
		Verbose:  *verbose,
	}, nil
}
