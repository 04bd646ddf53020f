// Package ingest prepares text files for the vector database: discovery,
// chunking, and metadata assembly.
package ingest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Chunk is one slice of a source document plus its provenance metadata.
type Chunk struct {
	Text     string
	Source   string
	Filename string
	Index    int
}

// ChunkText splits text into rune slices of at most size, advancing by
// size-overlap each step. Whitespace-only slices are dropped. size must be
// greater than overlap; the caller validates via config.
func ChunkText(text string, size, overlap int) []string {
	runes := []rune(text)
	stride := size - overlap

	var chunks []string
	for i := 0; i < len(runes); i += stride {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunk := string(runes[i:end])
		if strings.TrimSpace(chunk) != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

// ChunkFile reads a file and returns its chunks with metadata. The chunk
// index counts kept chunks, not scanned windows.
func ChunkFile(path string, size, overlap int) ([]Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	pieces := ChunkText(string(data), size, overlap)
	chunks := make([]Chunk, len(pieces))
	for i, text := range pieces {
		chunks[i] = Chunk{
			Text:     text,
			Source:   path,
			Filename: filepath.Base(path),
			Index:    i,
		}
	}
	return chunks, nil
}

// DiscoverFiles returns all .txt files under root, recursively, in walk order.
func DiscoverFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".txt") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}
