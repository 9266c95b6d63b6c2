package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/siliconflow/imgup-cli/meta"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Settings YAML 配置文件（~/.imgup/config.yaml）
type Settings struct {
	BaseURL         string   `yaml:"base_url" validate:"omitempty,url"`
	HandleUploadURL string   `yaml:"handle_upload_url"`
	Access          string   `yaml:"access" validate:"omitempty,eq=public"`
	Token           string   `yaml:"token"`
	Clipboard       []string `yaml:"clipboard" validate:"omitempty,dive,oneof=system osc52 prompt"`
	WebP            *bool    `yaml:"webp"`
	WebPQuality     uint     `yaml:"webp_quality" validate:"omitempty,min=1,max=100"`
}

// DefaultSettingsPath 默认配置文件路径
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, meta.ImgupFolder, meta.ConfigFileName)
}

// LoadSettings 读取并校验配置文件；optional 为 true 时文件不存在返回空配置
func LoadSettings(path string, optional bool) (*Settings, error) {
	if path == "" {
		return &Settings{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("read config file failed: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse config file failed: %w", err)
	}
	if err := ValidateSettings(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ValidateSettings 校验配置项取值
func ValidateSettings(s *Settings) error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config %s: %v does not satisfy %s", fe.Field(), fe.Value(), fe.Tag())
		}
		return err
	}
	return nil
}
