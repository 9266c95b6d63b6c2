package lib

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenBrowser 尝试在系统默认浏览器中打开指定的 URL
func OpenBrowser(url string) error {
	if url == "" {
		return fmt.Errorf("nothing to open")
	}
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "linux":
		for _, browser := range []string{"xdg-open", "x-www-browser", "gnome-open", "kde-open"} {
			if _, err := exec.LookPath(browser); err == nil {
				cmd = exec.Command(browser, url)
				break
			}
		}
		if cmd == nil {
			return fmt.Errorf("no browser command found")
		}
	default:
		return fmt.Errorf("unsupported os: %s", runtime.GOOS)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("cannot start browser: %v", err)
	}
	return nil
}
