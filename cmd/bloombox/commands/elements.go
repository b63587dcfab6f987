package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxElementBytes bounds a single input line.
const maxElementBytes = 1 << 20

// readElements returns args as elements, or the non-empty lines of in when
// args is empty.
func readElements(args []string, in io.Reader) ([][]byte, error) {
	if len(args) > 0 {
		elems := make([][]byte, len(args))
		for i, arg := range args {
			elems[i] = []byte(arg)
		}

		return elems, nil
	}

	return scanLines(in)
}

// readElementFile returns the non-empty lines of the file at path.
func readElementFile(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open elements: %w", err)
	}
	defer f.Close()

	return scanLines(f)
}

func scanLines(r io.Reader) ([][]byte, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxElementBytes)

	var elems [][]byte

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		elems = append(elems, []byte(line))
	}

	err := scanner.Err()
	if err != nil {
		return nil, fmt.Errorf("read elements: %w", err)
	}

	return elems, nil
}
