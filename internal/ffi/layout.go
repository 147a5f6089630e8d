package ffi

/*
#cgo CFLAGS: -I${SRCDIR}/../../include
#include <stdlib.h>
#include "rosu_native.h"

static void *rn_calloc(size_t n, size_t size) { return calloc(n, size); }
*/
import "C"

import (
	"unsafe"
)

// RawQuery mirrors OsuMap in rosu_native.h field for field.
type RawQuery struct {
	Path     *byte
	Mods     uint32
	Acc      float64
	Miss     uintptr
	Combo    uintptr
	MaxCombo uintptr
}

// RawResult mirrors PPResult in rosu_native.h field for field.
// Instances handed to the caller always live on the C heap.
type RawResult struct {
	PP        float64
	PPAcc     float64
	PPAim     float64
	PPSpeed   float64
	PPFC      float64
	MaxPP     float64
	MapStar   float64
	DebugText *byte
}

// NewResult allocates a zeroed RawResult on the C heap.
func NewResult() (*RawResult, error) {
	p := C.rn_calloc(1, C.size_t(unsafe.Sizeof(RawResult{})))
	if nil == p {
		return nil, ErrOutOfMemory
	}
	return (*RawResult)(p), nil
}

// FreeResult releases r and the debug string it owns in one call.
// nil is ignored.
func FreeResult(r *RawResult) {
	if nil == r {
		return
	}
	FreeString(r.DebugText)
	r.DebugText = nil
	C.free(unsafe.Pointer(r))
}

// layout describes the size and field offsets of a struct.
type layout struct {
	Size    uintptr
	Offsets []uintptr
}

func cQueryLayout() layout {
	var q C.OsuMap
	return layout{
		Size: unsafe.Sizeof(q),
		Offsets: []uintptr{
			unsafe.Offsetof(q.path),
			unsafe.Offsetof(q.mods),
			unsafe.Offsetof(q.acc),
			unsafe.Offsetof(q.miss),
			unsafe.Offsetof(q.combo),
			unsafe.Offsetof(q.max_combo),
		},
	}
}

func cResultLayout() layout {
	var r C.PPResult
	return layout{
		Size: unsafe.Sizeof(r),
		Offsets: []uintptr{
			unsafe.Offsetof(r.pp),
			unsafe.Offsetof(r.pp_acc),
			unsafe.Offsetof(r.pp_aim),
			unsafe.Offsetof(r.pp_speed),
			unsafe.Offsetof(r.pp_fc),
			unsafe.Offsetof(r.max_pp),
			unsafe.Offsetof(r.map_star),
			unsafe.Offsetof(r.debug_text),
		},
	}
}
