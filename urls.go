package slides2pdf

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/alnah/go-slides2pdf/internal/fileutil"
)

// ReadURLList reads one URL per line. Lines are trimmed, blank lines are
// skipped and file order is kept. Lines are not validated here so that a
// bad line fails on its own during the batch.
func ReadURLList(r io.Reader) ([]string, error) {
	var urls []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading URL list: %w", err)
	}

	return urls, nil
}

// ValidateURL checks that raw is an absolute http, https or file URL.
func ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return ErrEmptyURL
	}
	if !fileutil.IsURL(raw) {
		return fmt.Errorf("%w: %q (scheme must be http, https or file)", ErrInvalidURL, raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidURL, raw, err)
	}
	if u.Scheme == "file" {
		if u.Path == "" {
			return fmt.Errorf("%w: %q has no path", ErrInvalidURL, raw)
		}
		return nil
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %q has no host", ErrInvalidURL, raw)
	}
	return nil
}
