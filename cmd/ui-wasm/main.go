//go:build js && wasm

package main

import "github.com/Its-donkey/landing/internal/ui/wasm"

func main() {
	wasm.RunApp()
}
