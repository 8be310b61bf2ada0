package main

/*
#include <stdlib.h>

typedef void (*llmbridge_chunk_cb)(const char*);

static void invoke_chunk_cb(llmbridge_chunk_cb cb, const char* chunk) {
	if (cb != NULL) {
		cb(chunk);
	}
}
*/
import "C"

import (
	"context"
	"unsafe"

	"llmbridge/internal/bridge"
)

// Every export follows the boundary contract: no panic and no Go error
// crosses into the caller. Failures are the zero handle, a false int,
// or a well-formed JSON reply. Returned strings are C-allocated; the
// caller releases them with llmbridge_free_string.

//export llmbridge_init_model
func llmbridge_init_model(path *C.char) C.longlong {
	b, _ := shared()
	return C.longlong(b.InitModel(C.GoString(path)))
}

//export llmbridge_generate
func llmbridge_generate(handle C.longlong, prompt *C.char, maxTokens C.int) *C.char {
	b, _ := shared()
	resp := b.Generate(context.Background(), int64(handle), C.GoString(prompt), int(maxTokens))
	return C.CString(resp.Encode())
}

//export llmbridge_free_model
func llmbridge_free_model(handle C.longlong) {
	b, _ := shared()
	b.FreeModel(int64(handle))
}

//export llmbridge_legacy_init
func llmbridge_legacy_init() C.int {
	_, f := shared()
	return cbool(f.Init())
}

//export llmbridge_legacy_load_model
func llmbridge_legacy_load_model(path *C.char, threads, ctxSize C.int) C.int {
	_, f := shared()
	return cbool(f.LoadModel(C.GoString(path), int(threads), int(ctxSize)))
}

//export llmbridge_legacy_generate
func llmbridge_legacy_generate(prompt *C.char, maxTokens C.int, temperature, topP C.float) *C.char {
	_, f := shared()
	resp := f.Generate(context.Background(), C.GoString(prompt), int(maxTokens), float32(temperature), float32(topP))
	return C.CString(resp.Encode())
}

//export llmbridge_legacy_generate_cb
func llmbridge_legacy_generate_cb(prompt *C.char, maxTokens C.int, temperature C.float, cb C.llmbridge_chunk_cb) *C.char {
	_, f := shared()
	sink := bridge.SinkFunc(func(chunk string) error {
		cchunk := C.CString(chunk)
		C.invoke_chunk_cb(cb, cchunk)
		C.free(unsafe.Pointer(cchunk))
		return nil
	})
	resp := f.GenerateWithCallback(context.Background(), C.GoString(prompt), int(maxTokens), float32(temperature), 0.9, sink)
	return C.CString(resp.Encode())
}

//export llmbridge_legacy_unload
func llmbridge_legacy_unload() {
	_, f := shared()
	f.Unload()
}

//export llmbridge_legacy_cleanup
func llmbridge_legacy_cleanup() {
	_, f := shared()
	f.Cleanup()
}

//export llmbridge_legacy_is_loaded
func llmbridge_legacy_is_loaded() C.int {
	_, f := shared()
	return cbool(f.IsLoaded())
}

//export llmbridge_legacy_model_info
func llmbridge_legacy_model_info() *C.char {
	_, f := shared()
	return C.CString(f.ModelInfo())
}

//export llmbridge_legacy_version
func llmbridge_legacy_version() *C.char {
	_, f := shared()
	return C.CString(f.Version())
}

//export llmbridge_legacy_is_available
func llmbridge_legacy_is_available() C.int {
	_, f := shared()
	return cbool(f.IsAvailable())
}

//export llmbridge_free_string
func llmbridge_free_string(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}

func cbool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}
