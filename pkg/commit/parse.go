package commit

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseLog reads a plain text commit log.
//
// Each non-empty line describes one commit:
//
//	<hash> [<parent> ...] [-- <subject>]
//
// Lines starting with '#' are comments. The result keeps file order; callers
// that cannot guarantee children-before-parents should pass it to TopoSort.
func ParseLog(r io.Reader) (Sequence, error) {
	var commits Sequence
	seen := make(map[Hash]bool)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		subject := ""
		if head, tail, found := strings.Cut(line, "--"); found {
			line = strings.TrimSpace(head)
			subject = strings.TrimSpace(tail)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			return nil, fmt.Errorf("line %d: missing commit hash", lineNo)
		}

		parents := make([]Hash, 0, len(fields)-1)
		for _, f := range fields[1:] {
			parents = append(parents, Hash(f))
		}

		c, err := NewCommit(Hash(fields[0]), parents...)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if seen[c.Hash] {
			return nil, fmt.Errorf("line %d: duplicate commit %s", lineNo, c.Hash)
		}
		seen[c.Hash] = true
		c.Subject = subject

		commits = append(commits, c)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	return commits, nil
}
