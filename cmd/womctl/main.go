// Command womctl talks to a WOM Registry as the configured instrument or POS.
package main

import "os"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
