package main

import (
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/yiblet/tail/internal/cli"
)

func main() {
	var args cli.Args
	os.Args = append(os.Args[:1], cli.NormalizeArgs(os.Args[1:])...)
	parser := arg.MustParse(&args)

	status, err := cli.New().Execute(&args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tail: %v\n", err)
		if status == cli.ExitUsage {
			parser.WriteUsage(os.Stderr)
		}
	}
	os.Exit(status)
}
