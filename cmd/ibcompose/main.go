package main

import (
	"os"
)

func main() {
	if err := run(&app{}); err != nil {
		os.Exit(1)
	}
}

func run(a *app) error {
	return a.execute(newRootCmd(a))
}
