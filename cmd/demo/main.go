package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/yiblet/tail/internal/journal"
	"github.com/yiblet/tail/internal/logging"
	"github.com/yiblet/tail/internal/source"
	"github.com/yiblet/tail/internal/store/memstore"
	"github.com/yiblet/tail/internal/tail"
)

func main() {
	fmt.Println("tail Dispatcher Demo")

	dir, err := os.MkdirTemp("", "tail-demo")
	if err != nil {
		log.Fatalf("Failed to create demo directory: %v", err)
	}
	defer os.RemoveAll(dir)

	// Write a few sample sources
	var access strings.Builder
	for i := 1; i <= 500; i++ {
		fmt.Fprintf(&access, "GET /items/%d 200 %dms\n", i, i%37)
	}
	files := map[string]string{
		"access.log": access.String(),
		"short.log":  "only line without newline",
		"empty.log":  "",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			log.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	logger := logging.New(os.Stderr, "tail-demo", false)
	jm := journal.NewManager(memstore.NewMemoryStore())
	defer jm.Close()

	opener := source.NewFSOpener(os.DirFS(dir))
	runs := []tail.Config{
		{Count: 3, Direction: tail.FromBottom, ShowHeaders: true, Sources: []string{"access.log", "short.log", "empty.log"}},
		{Count: 498, Direction: tail.FromTop, ShowHeaders: true, Sources: []string{"access.log", "missing.log"}},
	}

	for i, cfg := range runs {
		fmt.Printf("\n--- run %d ---\n", i+1)
		results := tail.NewDispatcher(os.Stdout, opener, tail.WithBlockSize(256)).Run(cfg)
		for _, res := range results {
			logger.SourceError(res.Err)
		}
		if _, err := jm.Record(cfg, results); err != nil {
			log.Printf("Failed to record run: %v", err)
		}
	}

	fmt.Println("\nJournal (newest first):")
	recorded, err := jm.List(0)
	if err != nil {
		log.Fatalf("Failed to list journal: %v", err)
	}
	if err := journal.WriteRuns(os.Stdout, recorded); err != nil {
		log.Fatalf("Failed to print journal: %v", err)
	}

	fmt.Printf("\nDemo complete! (Using in-memory journal)\n")
}
