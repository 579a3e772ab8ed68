// Command imgresize drives the imgresize library end to end: decode an
// image file, resize it or convert its alpha representation, and
// write the result back out. It is ambient tooling around the core
// engine: a cobra command tree plus a thin main().
package main

import (
	"log"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("imgresize: %v", err)
	}
}
