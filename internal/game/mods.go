package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Mods is the osu! modifier bitmask.
type Mods uint32

const (
	NoFail      Mods = 1 << 0
	Easy        Mods = 1 << 1
	TouchDevice Mods = 1 << 2
	Hidden      Mods = 1 << 3
	HardRock    Mods = 1 << 4
	SuddenDeath Mods = 1 << 5
	DoubleTime  Mods = 1 << 6
	Relax       Mods = 1 << 7
	HalfTime    Mods = 1 << 8
	Nightcore   Mods = 1 << 9
	Flashlight  Mods = 1 << 10
	SpunOut     Mods = 1 << 12
	Perfect     Mods = 1 << 14
)

var modAcronyms = []struct {
	Mod  Mods
	Name string
}{
	{NoFail, "NF"},
	{Easy, "EZ"},
	{TouchDevice, "TD"},
	{Hidden, "HD"},
	{HardRock, "HR"},
	{SuddenDeath, "SD"},
	{DoubleTime, "DT"},
	{Relax, "RX"},
	{HalfTime, "HT"},
	{Nightcore, "NC"},
	{Flashlight, "FL"},
	{SpunOut, "SO"},
	{Perfect, "PF"},
}

func (m Mods) Has(mod Mods) bool {
	return m&mod != 0
}

// ClockRate is the playback speed the mods imply.
func (m Mods) ClockRate() float64 {
	switch {
	case m.Has(DoubleTime), m.Has(Nightcore):
		return 1.5
	case m.Has(HalfTime):
		return 0.75
	}
	return 1
}

func (m Mods) String() string {
	if m == 0 {
		return "NM"
	}
	var b strings.Builder
	for _, a := range modAcronyms {
		if m.Has(a.Mod) {
			b.WriteString(a.Name)
		}
	}
	return b.String()
}

// ParseMods accepts either a decimal bitmask ("24") or concatenated
// acronyms ("HDHR", case-insensitive).
func ParseMods(s string) (Mods, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseUint(s, 10, 32); nil == err {
		return Mods(n), nil
	}
	s = strings.ToUpper(s)
	if s == "NM" {
		return 0, nil
	}
	if len(s)%2 != 0 {
		return 0, fmt.Errorf("invalid mods %q", s)
	}
	var m Mods
	for i := 0; i < len(s); i += 2 {
		found := false
		for _, a := range modAcronyms {
			if a.Name == s[i:i+2] {
				m |= a.Mod
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown mod %q", s[i:i+2])
		}
	}
	return m, nil
}
