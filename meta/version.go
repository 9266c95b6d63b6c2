package meta

const (
	Name        = "imgup"
	Description = "A CLI tool for uploading images to blob storage."
)

var (
	// Version This variable is replaced in compile time. `-ldflags "-X 'github.com/siliconflow/imgup-cli/meta.Version=${VERSION}'"`
	Version = "0.1.0"
	// Commit This variable is replaced in compile time. `-ldflags "-X 'github.com/siliconflow/imgup-cli/meta.Commit=${GIT_REV}'"`
	Commit = "latest"
	// BuildDate This variable is replaced in compile time. `-ldflags "-X 'github.com/siliconflow/imgup-cli/meta.BuildDate=${BUILD_DATE}'"`
	BuildDate = "2026-10-15T10:00:00+08:00"
)
