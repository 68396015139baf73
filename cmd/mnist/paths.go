package main

import (
	"fmt"
	"os"
	"strings"
)

const envDataDir = "MNIST_DATA_DIR"

func resolveDataDir(flagValue string) (string, error) {
	dir := strings.TrimSpace(flagValue)
	if dir == "" {
		dir = strings.TrimSpace(os.Getenv(envDataDir))
	}
	if dir == "" {
		return "", fmt.Errorf("--data-dir is required unless %s is set", envDataDir)
	}
	st, err := os.Stat(dir)
	if err != nil {
		return "", err
	}
	if !st.IsDir() {
		return "", fmt.Errorf("data path is not a directory: %s", dir)
	}
	return dir, nil
}

func formatBytes(b int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
		gb = 1024 * mb
	)
	switch {
	case b >= gb:
		return fmt.Sprintf("%.2f GiB", float64(b)/gb)
	case b >= mb:
		return fmt.Sprintf("%.2f MiB", float64(b)/mb)
	case b >= kb:
		return fmt.Sprintf("%.2f KiB", float64(b)/kb)
	default:
		return fmt.Sprintf("%d B", b)
	}
}
