package utils

import (
	"path/filepath"
)

// JoinPath makes a path from a directory path and a file name
func JoinPath(dirPath string, fileName string) string {
	return filepath.Join(dirPath, fileName)
}
