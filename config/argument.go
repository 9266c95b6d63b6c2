package config

import (
	"errors"
	"os"
	"strings"

	"github.com/cloudwego/hertz/cmd/hz/util/logs"
	"github.com/joho/godotenv"
	"github.com/siliconflow/imgup-cli/meta"
	"github.com/urfave/cli/v2"
)

// 命令行 flag 名称
const (
	FlagVerbose         = "verbose"
	FlagBaseURL         = "base_url"
	FlagToken           = "token"
	FlagConfig          = "config"
	FlagHandleUploadURL = "handle_upload_url"
	FlagAccess          = "access"
	FlagPath            = "path"
	FlagCopy            = "copy"
	FlagOpen            = "open"
	FlagWebP            = "webp"
	FlagWebPQuality     = "webp_quality"
	FlagClipboard       = "clipboard"
)

const defaultWebPQuality = 75

// Argument 命令行参数
type Argument struct {
	Verbose         bool
	BaseURL         string
	Token           string
	ConfigPath      string
	HandleUploadURL string
	Access          string
	Path            string
	Copy            bool
	Open            bool
	ConvertWebP     bool
	WebPQuality     uint
	Clipboard       []string
	Text            string
}

func NewArgument() *Argument {
	return &Argument{}
}

// LoadDotEnv 读取当前目录下的 .env（不存在时忽略）
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logs.Warnf("load .env failed: %v\n", err)
	}
}

// Parse 合并优先级：命令行 flag > YAML 配置 > 默认值
func (a *Argument) Parse(c *cli.Context, cmd string) (*Argument, error) {
	args := *a
	args.Clipboard = c.StringSlice(FlagClipboard)
	if cmd == meta.CmdCopy {
		args.Text = strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	}

	path, optional := args.ConfigPath, false
	if path == "" {
		path, optional = DefaultSettingsPath(), true
	}
	s, err := LoadSettings(path, optional)
	if err != nil {
		return nil, err
	}

	if !c.IsSet(FlagBaseURL) && s.BaseURL != "" {
		args.BaseURL = s.BaseURL
	}
	if !c.IsSet(FlagHandleUploadURL) && s.HandleUploadURL != "" {
		args.HandleUploadURL = s.HandleUploadURL
	}
	if !c.IsSet(FlagAccess) && s.Access != "" {
		args.Access = s.Access
	}
	if !c.IsSet(FlagToken) && s.Token != "" {
		args.Token = s.Token
	}
	if !c.IsSet(FlagWebP) && s.WebP != nil {
		args.ConvertWebP = *s.WebP
	}
	if !c.IsSet(FlagWebPQuality) && s.WebPQuality != 0 {
		args.WebPQuality = s.WebPQuality
	}
	if len(args.Clipboard) == 0 {
		args.Clipboard = s.Clipboard
	}
	args.applyDefaults()
	return &args, nil
}

func (a *Argument) applyDefaults() {
	if a.BaseURL == "" {
		a.BaseURL = meta.DefaultBaseURL
	}
	if a.HandleUploadURL == "" {
		a.HandleUploadURL = meta.DefaultHandleUploadURL
	}
	if a.Access == "" {
		a.Access = meta.AccessPublic
	}
	if a.WebPQuality == 0 {
		a.WebPQuality = defaultWebPQuality
	}
	if len(a.Clipboard) == 0 {
		a.Clipboard = meta.DefaultClipboardOrder
	}
}
