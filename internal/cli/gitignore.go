package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

const gitignoreFile = ".gitignore"

// gitignoreEntries keep transient teco files out of version control.
var gitignoreEntries = []string{
	tecoDir + "/**/*.lock",
	tecoDir + "/logs/",
}

// addToGitignore appends entries that are not already present.
func addToGitignore(entries ...string) error {
	content, err := os.ReadFile(gitignoreFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	existing := make(map[string]bool)
	for _, line := range strings.Split(string(content), "\n") {
		existing[strings.TrimSpace(line)] = true
	}

	var b strings.Builder
	b.Write(content)
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		b.WriteString("\n")
	}
	added := false
	for _, e := range entries {
		if existing[e] {
			continue
		}
		fmt.Fprintln(&b, e)
		added = true
	}
	if !added {
		return nil
	}
	return os.WriteFile(gitignoreFile, []byte(b.String()), 0644)
}

// removeFromGitignore drops matching lines. A file left empty is removed.
func removeFromGitignore(entries ...string) error {
	content, err := os.ReadFile(gitignoreFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	drop := make(map[string]bool, len(entries))
	for _, e := range entries {
		drop[e] = true
	}

	var kept []string
	for _, line := range strings.Split(strings.TrimRight(string(content), "\n"), "\n") {
		if drop[strings.TrimSpace(line)] {
			continue
		}
		kept = append(kept, line)
	}

	if len(kept) == 0 || (len(kept) == 1 && kept[0] == "") {
		return os.Remove(gitignoreFile)
	}
	return os.WriteFile(gitignoreFile, []byte(strings.Join(kept, "\n")+"\n"), 0644)
}
