package main

import "os"

func main() {
	// Relaunch hops carry a marker instead of a subcommand.
	if isHop(os.Args[1:]) {
		os.Exit(runHop(os.Args[1:]))
	}
	execute()
}
