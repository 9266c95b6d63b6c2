package cmd

import (
	"fmt"
	"os"

	"github.com/siliconflow/imgup-cli/lib"
	"github.com/siliconflow/imgup-cli/meta"
	"github.com/urfave/cli/v2"
)

func Copy(c *cli.Context) error {
	args, err := globalArgs.Parse(c, meta.CmdCopy)
	if err != nil {
		return cli.Exit(err, meta.LoadError)
	}
	setLogVerbose(args.Verbose)

	if args.Text == "" {
		return cli.Exit(fmt.Sprintf("nothing to copy, usage: %s %s <text>", meta.Name, meta.CmdCopy), meta.LoadError)
	}
	chain, err := lib.NewClipboardChain(args.Clipboard, os.Stdout)
	if err != nil {
		return cli.Exit(err, meta.LoadError)
	}
	outcome, err := chain.Copy(c.Context, args.Text)
	if err != nil {
		return cli.Exit(err, meta.LoadError)
	}
	if outcome.Copied {
		fmt.Fprintf(os.Stdout, "Copied! (%s)\n", outcome.Strategy)
	}
	return nil
}
