package huff

import (
	"bufio"
	"path/filepath"
	"strings"
)

const (
	// SourceExt is the extension of Huff source files.
	SourceExt = ".huff"

	interfacePrefix = "I"
	interfaceExt    = ".sol"
)

// InterfacePath derives the path of the Solidity interface that huffc
// generates next to a Huff source: same directory, "I" prefix, .sol extension.
func InterfacePath(sourcePath string) string {
	dir, base := filepath.Split(sourcePath)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	return filepath.Join(dir, interfacePrefix+name+interfaceExt)
}

// InterfaceParser extracts declaration signatures from a generated interface
// source. The scan is a deliberate line-oriented heuristic, kept behind this
// interface so it can be swapped for a real parser if the generated grammar
// ever changes.
type InterfaceParser interface {
	ParseSignatures(source string) []string
}

// NewLineScraper returns a parser that extracts, from every line containing
// the given declaration keyword, the span between the keyword and the first
// following ';' (terminator excluded). It assumes at most one declaration
// per line and no stray occurrence of the keyword in comments.
func NewLineScraper(keyword string) InterfaceParser {
	return &lineScraper{
		keyword: keyword,
	}
}

type lineScraper struct {
	keyword string
}

func (s *lineScraper) ParseSignatures(source string) []string {
	var signatures []string

	scanner := bufio.NewScanner(strings.NewReader(source))
	for scanner.Scan() {
		line := scanner.Text()

		start := strings.Index(line, s.keyword)
		if start < 0 {
			continue
		}

		end := strings.Index(line[start:], ";")
		if end < 0 {
			continue
		}

		signatures = append(signatures, strings.TrimSpace(line[start:start+end]))
	}

	return signatures
}
