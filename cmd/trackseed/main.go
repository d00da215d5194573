package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/adyam-logistics/trackseed/internal/cli"
	"github.com/adyam-logistics/trackseed/pkg/trackseed"
)

// panicEnv forces a panic before the command runs; used to exercise recovery.
const panicEnv = "TRACKSEED_TEST_PANIC"

func main() {
	os.Exit(run(os.Stderr))
}

// run executes the CLI and converts its outcome, including a panic, into a
// process exit code. Stack traces go to stderr.
func run(stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "panic: %v\n%s\n", r, debug.Stack())
			code = trackseed.ExitPanic
		}
	}()

	if os.Getenv(panicEnv) == "1" {
		panic("intentional test panic")
	}
	return trackseed.ExitCodeForError(cli.Execute())
}
