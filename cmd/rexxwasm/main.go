//go:build js && wasm

// Package main is the WebAssembly entry point for the REXX engine. It
// exports the engine's run operation to JavaScript as window.Rexx.run and
// keeps the module alive to service calls.
//
// Build with:
//   GOOS=js GOARCH=wasm go build -o rexx.wasm ./cmd/rexxwasm
//
// Usage from JavaScript:
//   <script src="wasm_exec.js"></script>
//   <script>
//     const go = new Go();
//     WebAssembly.instantiateStreaming(fetch("rexx.wasm"), go.importObject)
//       .then((result) => {
//         go.run(result.instance);
//         const { success, output, result, error } = window.Rexx.run(commandsJSON);
//       });
//   </script>
package main

import (
	"syscall/js"

	"github.com/rexxgo/rexxcore/pkg/wasmhost"
)

func main() {
	done := make(chan struct{})

	wasmhost.RegisterAPI()

	js.Global().Get("console").Call("log", "REXX engine WASM module initialized")

	<-done
}
