package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matthiasdebernardini/lowmain/internal/cli"
	"github.com/matthiasdebernardini/lowmain/internal/envelope"
)

func main() {
	// Any unhandled fault becomes a fixed PANIC envelope on stderr so the
	// calling agent always receives structured output.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, envelope.Panic(r))
			os.Exit(1)
		}
	}()

	root := cli.NewRootCommand()
	if err := cli.Execute(context.Background(), root); err != nil {
		os.Exit(1)
	}
}
