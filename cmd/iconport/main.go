// Command iconport converts animated React/Motion icon components into
// SolidJS components.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
