//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "sand: this binary was built without a window.")
	fmt.Fprintln(os.Stderr, "Build with `go build -tags ebiten ./cmd/sand`, or run `sandctl tui` to play in the terminal.")
	os.Exit(2)
}
