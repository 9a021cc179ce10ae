package browser

import (
	"os"
	"runtime"
)

var linuxChromes = []string{
	"/usr/bin/chromium-browser",
	"/usr/bin/chromium",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
}

// FindChrome on the FS, returns the binary and the tmp dir to put profiles in
func FindChrome() (string, string) {
	switch runtime.GOOS {
	case "windows":
		return "C:\\Program Files (x86)\\Google\\Chrome\\Application\\chrome.exe", "C:\\Temp\\gcd\\"
	case "darwin":
		return "/Applications/Google Chrome.app/Contents/MacOS/Google Chrome", "/tmp/gcd/"
	case "linux":
		for _, chrome := range linuxChromes {
			if _, err := os.Stat(chrome); err == nil {
				return chrome, "/tmp/gcd/"
			}
		}
		return linuxChromes[0], "/tmp/gcd/"
	}
	return "", "tmp"
}

// HasChrome is true if the chrome binary FindChrome returns exists
func HasChrome() bool {
	chrome, _ := FindChrome()
	if chrome == "" {
		return false
	}
	_, err := os.Stat(chrome)
	return err == nil
}
