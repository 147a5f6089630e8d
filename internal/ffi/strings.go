package ffi

/*
#include <stdlib.h>

// cgo's own C.malloc aborts the process when malloc fails, this does not.
static void *rn_malloc(size_t n) { return malloc(n); }
*/
import "C"

import (
	"strings"
	"unicode/utf8"
	"unsafe"

	"github.com/pkg/errors"
)

var (
	ErrNullPointer = errors.New("null pointer")
	ErrInvalidText = errors.New("text is not valid utf-8")
	ErrNulInText   = errors.New("text contains a nul byte")
	ErrOutOfMemory = errors.New("out of memory")
)

// GoString copies the NUL-terminated string at p into Go memory.
// It never panics on nil or on bytes that are not valid UTF-8.
func GoString(p *byte) (string, error) {
	if nil == p {
		return "", ErrNullPointer
	}
	s := C.GoString((*C.char)(unsafe.Pointer(p)))
	if !utf8.ValidString(s) {
		return "", ErrInvalidText
	}
	return s, nil
}

// CString copies s onto the C heap. The caller owns the result and must
// release it with FreeString.
func CString(s string) (*byte, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, ErrNulInText
	}
	n := len(s)
	p := C.rn_malloc(C.size_t(n + 1))
	if nil == p {
		return nil, ErrOutOfMemory
	}
	buf := unsafe.Slice((*byte)(p), n+1)
	copy(buf, s)
	buf[n] = 0
	return (*byte)(p), nil
}

// FreeString releases a string returned by CString. nil is ignored.
// Freeing a pointer twice, or one this package did not allocate, is
// undefined.
func FreeString(p *byte) {
	if nil == p {
		return
	}
	C.free(unsafe.Pointer(p))
}
