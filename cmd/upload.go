package cmd

import (
	"fmt"
	"os"

	"github.com/cloudwego/hertz/cmd/hz/util/logs"
	"github.com/siliconflow/imgup-cli/lib"
	"github.com/siliconflow/imgup-cli/lib/actions"
	"github.com/siliconflow/imgup-cli/meta"
	"github.com/urfave/cli/v2"
)

func Upload(c *cli.Context) error {
	args, err := globalArgs.Parse(c, meta.CmdUpload)
	if err != nil {
		return cli.Exit(err, meta.LoadError)
	}
	setLogVerbose(args.Verbose)
	logs.Debugf("args: %#v\n", args)

	// 1. 校验参数
	if err := lib.ValidateAccess(args.Access); err != nil {
		return cli.Exit(err, meta.LoadError)
	}
	file, err := actions.NewSelectedFile(args.Path)
	if err != nil {
		return cli.Exit(err, meta.LoadError)
	}

	// 2. 提交表单
	var state actions.FormState
	state, _ = state.Apply(actions.FileSelected{File: file})
	var progress lib.ProgressCallback
	if file != nil {
		progress = createUploadProgressCallback(file.Name)
	}
	state, err = actions.Submit(c.Context, state, actions.NewBlobUploaderFromArgs(args), progress)
	if err != nil {
		return cli.Exit(err, meta.LoadError)
	}
	if progress != nil {
		fmt.Fprintln(os.Stdout)
	}
	if state.Phase == actions.PhaseFailed {
		msg := state.ErrMessage
		if state.ErrStep != "" {
			msg = fmt.Sprintf("%s failed: %s", state.ErrStep, msg)
		}
		return cli.Exit(msg, lib.ExitCode(state.Err))
	}

	// 3. 输出结果
	url := state.ResultURL()
	fmt.Fprintf(os.Stdout, "Blob url: %s\n", url)

	if args.Copy {
		chain, err := lib.NewClipboardChain(args.Clipboard, os.Stdout)
		if err != nil {
			return cli.Exit(err, meta.LoadError)
		}
		state = actions.Copy(c.Context, state, chain)
		switch {
		case state.Copied:
			fmt.Fprintln(os.Stdout, "Copied!")
		case state.CopyError != "":
			logs.Warnf("copy failed: %s\n", state.CopyError)
		}
	}
	if args.Open {
		if err := lib.OpenBrowser(url); err != nil {
			logs.Warnf("open browser failed: %v\n", err)
		}
	}
	return nil
}
