package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/xiaobogaga/jackc/compiler/internal"
)

// jackc compiles jack classes to vm code, one <Name>.vm per <Name>.jack. With -k the
// failures of all files are reported together at the end.

var (
	path      = flag.String("path", ".", "the jack file, or the directory of jack files, to compile")
	tokens    = flag.Bool("tokens", false, "whether also write the token listing of each file to <Name>T.xml")
	tree      = flag.Bool("xml", false, "whether also write the parse tree of each file to <Name>.xml")
	jobs      = flag.Int("j", runtime.NumCPU(), "how many files are compiled at the same time")
	keepGoing = flag.Bool("k", false, "whether keep compiling the other files when one fails")
	verbose   = flag.Bool("v", false, "whether print compile progress")
)

func main() {
	flag.Parse()
	opts := internal.Options{
		Parallelism: *jobs,
		EmitTokens:  *tokens,
		EmitTree:    *tree,
		KeepGoing:   *keepGoing,
	}
	if *verbose {
		opts.Logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := internal.Compile(ctx, *path, opts)
	stop()
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		os.Exit(1)
	}
}
