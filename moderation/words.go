package moderation

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed words/*.txt
var wordFiles embed.FS

// DefaultWords loads the embedded censored-word lists, one term per
// line, '#' starting a comment.
func DefaultWords() ([]string, error) {
	var words []string
	seen := make(map[string]struct{})

	err := fs.WalkDir(wordFiles, "words", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		f, err := wordFiles.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if _, dup := seen[line]; dup {
				continue
			}
			seen[line] = struct{}{}
			words = append(words, line)
		}
		return scanner.Err()
	})
	return words, err
}
