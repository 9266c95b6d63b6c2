package cmd

import (
	"fmt"

	"github.com/cloudwego/hertz/cmd/hz/util/logs"
	tuiPkg "github.com/siliconflow/imgup-cli/cmd/tui"
	"github.com/siliconflow/imgup-cli/config"
	"github.com/siliconflow/imgup-cli/meta"
	"github.com/urfave/cli/v2"
)

var globalArgs = config.NewArgument()

func Init() *cli.App {
	// .env 需在 flag 解析前载入，EnvVars 才能读到
	config.LoadDotEnv()

	// flags
	verboseFlag := cli.BoolFlag{Name: config.FlagVerbose, Aliases: []string{"vv"}, Usage: "turn on verbose mode", Destination: &globalArgs.Verbose}
	baseURLFlag := cli.StringFlag{Name: config.FlagBaseURL, Usage: "Specify the base url of the authorization server.", EnvVars: []string{meta.EnvBaseURL}, Destination: &globalArgs.BaseURL}
	tokenFlag := cli.StringFlag{Name: config.FlagToken, Usage: "Bearer token sent to the authorization route.", EnvVars: []string{meta.EnvToken}, Destination: &globalArgs.Token}
	configFlag := cli.StringFlag{Name: config.FlagConfig, Usage: fmt.Sprintf("Path of the YAML settings file. (default: ~/%s/%s)", meta.ImgupFolder, meta.ConfigFileName), Destination: &globalArgs.ConfigPath}
	handleFlag := cli.StringFlag{Name: config.FlagHandleUploadURL, Aliases: []string{"handle-upload-url"}, Usage: fmt.Sprintf("Authorization route, relative to base_url. (default: %s)", meta.DefaultHandleUploadURL), Destination: &globalArgs.HandleUploadURL}
	accessFlag := cli.StringFlag{Name: config.FlagAccess, Usage: "Blob access, only \"public\" is supported.", Destination: &globalArgs.Access}
	clipboardFlag := cli.StringSliceFlag{Name: config.FlagClipboard, Usage: fmt.Sprintf("Clipboard strategies in order, any of: %s, %s, %s", meta.ClipboardSystem, meta.ClipboardOSC52, meta.ClipboardPrompt), Destination: &cli.StringSlice{}}
	pathFlag := cli.StringFlag{Name: config.FlagPath, Aliases: []string{"p"}, Usage: "Specify the image to upload.", Destination: &globalArgs.Path}
	copyFlag := cli.BoolFlag{Name: config.FlagCopy, Usage: "Copy the blob url after upload.", Destination: &globalArgs.Copy}
	openFlag := cli.BoolFlag{Name: config.FlagOpen, Usage: "Open the blob url in the browser after upload.", Destination: &globalArgs.Open}
	webpFlag := cli.BoolFlag{Name: config.FlagWebP, Usage: "Convert the image to WebP before upload.", Destination: &globalArgs.ConvertWebP}
	webpQualityFlag := cli.UintFlag{Name: config.FlagWebPQuality, Usage: "WebP quality (1-100).", Destination: &globalArgs.WebPQuality}

	app := cli.NewApp()
	app.Name = meta.Name
	app.Usage = meta.Description
	app.Version = meta.Version
	cli.VersionPrinter = func(cCtx *cli.Context) {
		fmt.Printf("Version: %s\nRevision: %s\nBuild At: %s\n", cCtx.App.Version, meta.Commit, meta.BuildDate)
	}

	// global flags
	app.Flags = []cli.Flag{
		&verboseFlag,
		&baseURLFlag,
		&tokenFlag,
		&configFlag,
		&handleFlag,
		&accessFlag,
		&clipboardFlag,
		&webpFlag,
		&webpQualityFlag,
	}

	// 默认无参进入上传表单 TUI
	app.Action = TUI

	// Commands
	app.Commands = []*cli.Command{
		{
			Name:  meta.CmdUpload,
			Usage: "Upload an image and print its blob url",
			Flags: []cli.Flag{
				&pathFlag,
				&copyFlag,
				&openFlag,
			},
			Action: Upload,
		},
		{
			Name:      meta.CmdCopy,
			Usage:     "Copy text to the clipboard through the fallback chain",
			ArgsUsage: "<text>",
			Action:    Copy,
		},
	}

	return app
}

// TUI 解析参数后启动交互式表单
func TUI(c *cli.Context) error {
	args, err := globalArgs.Parse(c, "")
	if err != nil {
		return cli.Exit(err, meta.LoadError)
	}
	setLogVerbose(args.Verbose)
	return tuiPkg.MainTUI(args)
}

func setLogVerbose(verbose bool) {
	if verbose {
		logs.SetLevel(logs.LevelDebug)
	} else {
		logs.SetLevel(logs.LevelWarn)
	}
}
