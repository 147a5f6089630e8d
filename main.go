// Command rosu-native is built with -buildmode=c-shared. It exports the pp
// calculation entry points declared in include/rosu_native.h.
package main

/*
#cgo CFLAGS: -I${SRCDIR}/include
#include "rosu_native.h"
*/
import "C"

import (
	"unsafe"

	"github.com/DAYGoodTime/rosu-native/internal/bridge"
	"github.com/DAYGoodTime/rosu-native/internal/ffi"
)

func main() {}

func query(q *C.OsuMap) *ffi.RawQuery {
	return (*ffi.RawQuery)(unsafe.Pointer(q))
}

func result(r *ffi.RawResult) *C.PPResult {
	return (*C.PPResult)(unsafe.Pointer(r))
}

//export hello_rust
func hello_rust(text *C.char) *C.char {
	defer recoverQuietly()
	return (*C.char)(unsafe.Pointer(bridge.Hello((*byte)(unsafe.Pointer(text)))))
}

//export cal_pp
func cal_pp(q *C.OsuMap) *C.PPResult {
	res, _ := bridge.Calculate(query(q))
	return result(res)
}

//export cal_pp_status
func cal_pp_status(q *C.OsuMap, out **C.PPResult) C.int32_t {
	res, status := bridge.Calculate(query(q))
	if nil != out {
		*out = result(res)
	} else {
		ffi.FreeResult(res)
	}
	return C.int32_t(status)
}

//export return_obj
func return_obj() *C.PPResult {
	defer recoverQuietly()
	res, err := bridge.Sample()
	if nil != err {
		return nil
	}
	return result(res)
}

//export debug_return
func debug_return(n C.uint32_t) C.size_t {
	return C.size_t(n)
}

//export free_string
func free_string(s *C.char) {
	ffi.FreeString((*byte)(unsafe.Pointer(s)))
}

//export free_result
func free_result(r *C.PPResult) {
	ffi.FreeResult((*ffi.RawResult)(unsafe.Pointer(r)))
}

//export status_text
func status_text(code C.int32_t) *C.char {
	return (*C.char)(unsafe.Pointer(bridge.StatusText(int32(code))))
}

//export set_logging
func set_logging(enabled C.int32_t) {
	bridge.SetLogging(0 != enabled)
}

// recoverQuietly keeps a panic from unwinding into the caller. Functions
// deferring it return their zero value.
func recoverQuietly() {
	recover()
}
