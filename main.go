package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/kilianp07/rsudist/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rsudist:", err)
		os.Exit(1)
	}
}
