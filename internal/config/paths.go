package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// expandPath expands a leading ~/ (or ~\ on Windows). Anything else,
// including $, is taken literally.
func expandPath(p string) string {
	if p == "" {
		return p
	}

	expanded := p
	if expanded == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return expanded
	}
	if strings.HasPrefix(expanded, "~/") || (runtime.GOOS == "windows" && strings.HasPrefix(expanded, "~\\")) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, expanded[2:])
		}
	}
	return expanded
}

// expandEnv expands $VAR and ${VAR}, plus %VAR% on Windows.
// Only values read from config files go through it.
func expandEnv(p string) string {
	expanded := os.ExpandEnv(p)
	if runtime.GOOS != "windows" || !strings.Contains(expanded, "%") {
		return expanded
	}
	// %VAR% form; unknown variables are left as written.
	var b strings.Builder
	for i := 0; i < len(expanded); {
		if expanded[i] == '%' {
			if end := strings.IndexByte(expanded[i+1:], '%'); end > 0 {
				key := expanded[i+1 : i+1+end]
				if val, ok := os.LookupEnv(key); ok {
					b.WriteString(val)
				} else {
					b.WriteString("%" + key + "%")
				}
				i += end + 2
				continue
			}
		}
		b.WriteByte(expanded[i])
		i++
	}
	return b.String()
}
