package bridge

import (
	"fmt"
	"sync"

	"github.com/DAYGoodTime/rosu-native/internal/ffi"
	"github.com/DAYGoodTime/rosu-native/internal/pipeline"
)

// Status is the code returned across the C boundary. The values are fixed
// by rosu_native.h.
type Status int32

const (
	StatusOK Status = iota
	StatusInvalidInput
	StatusMapParseError
	StatusUnsupportedRuleset
	StatusInternalError
)

var statusNames = map[Status]string{
	StatusOK:                 "ok",
	StatusInvalidInput:       "invalid input",
	StatusMapParseError:      "map parse error",
	StatusUnsupportedRuleset: "unsupported ruleset",
	StatusInternalError:      "internal computation error",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int32(s))
}

// StatusFor maps a pipeline error to its status code. Errors that did not
// come from the pipeline are internal.
func StatusFor(err error) Status {
	if nil == err {
		return StatusOK
	}
	switch pipeline.KindOf(err) {
	case pipeline.InvalidInput:
		return StatusInvalidInput
	case pipeline.MapParseError:
		return StatusMapParseError
	case pipeline.UnsupportedRuleset:
		return StatusUnsupportedRuleset
	}
	return StatusInternalError
}

var (
	statusOnce  sync.Once
	statusTexts map[Status]*byte
	unknownText *byte
)

// StatusText returns a C string describing code. The strings are allocated
// once and live for the life of the process; callers must not free them.
func StatusText(code int32) *byte {
	statusOnce.Do(func() {
		statusTexts = make(map[Status]*byte, len(statusNames))
		for s, name := range statusNames {
			if p, err := ffi.CString(name); nil == err {
				statusTexts[s] = p
			}
		}
		unknownText, _ = ffi.CString("unknown status")
	})
	if p, ok := statusTexts[Status(code)]; ok {
		return p
	}
	return unknownText
}
