// bus1553 is a CLI for encoding, decoding, and replaying MIL-STD-1553B bus
// traffic.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
