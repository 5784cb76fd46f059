package configwatcher

import (
	"context"
	"feelio_backend/internal/config"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const baseYAML = `
database:
  driver: sqlite
storage:
  type: local
  local_path: %s
classifier:
  url: %s
  threshold: 0.5
`

func writeConfig(t *testing.T, file, uploads, classifierURL string) {
	t.Helper()
	content := []byte(fmt.Sprintf(baseYAML, uploads, classifierURL))
	require.NoError(t, os.WriteFile(file, content, 0o644))
}

func TestWatchConfig_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	uploads := filepath.Join(dir, "uploads")
	file := filepath.Join(dir, "config.yaml")
	writeConfig(t, file, uploads, "http://old:5001")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 1)
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, file, func(cfg *config.Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// 等待监听建立
	time.Sleep(200 * time.Millisecond)
	writeConfig(t, file, uploads, "http://new:5001")

	select {
	case cfg := <-reloaded:
		require.Equal(t, "http://new:5001", cfg.Classifier.URL)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
