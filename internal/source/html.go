package source

import (
	"fmt"
	"io"
	"strings"
)

// HTMLLoader passes HTML through, minus a leading byte order mark.
type HTMLLoader struct{}

func (l *HTMLLoader) Load(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filename, err)
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}
