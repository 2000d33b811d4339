package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ExpandTilde replaces ~ or ~/path with the user's home directory.
// Does not support ~username syntax.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

var varPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Expand replaces ${NAME} references. Supported names:
//   - ${PROJECT} - git root or current directory name
//   - ${USER}    - current username
//   - ${HOME}    - home directory
//   - any environment variable
//
// Unknown names are left as written. Bare $NAME is never expanded, so DSNs
// and URLs containing '$' survive.
func Expand(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return varPattern.ReplaceAllStringFunc(s, func(ref string) string {
		name := varPattern.FindStringSubmatch(ref)[1]
		switch name {
		case "PROJECT":
			return getProject()
		case "USER":
			return getUser()
		case "HOME":
			return getHome()
		}
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return ref
	})
}

func getProject() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "project"
	}
	if root := findGitRoot(cwd); root != "" {
		return filepath.Base(root)
	}
	return filepath.Base(cwd)
}

func findGitRoot(dir string) string {
	for {
		if isGitRoot(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func getUser() string {
	for _, key := range []string{"USER", "LOGNAME", "USERNAME"} {
		if u := os.Getenv(key); u != "" {
			return u
		}
	}
	return "user"
}

func getHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "~"
}
