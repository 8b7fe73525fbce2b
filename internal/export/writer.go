package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/grid"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// FormatFor picks an output format from a file extension, defaulting to JSON.
func FormatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Encode serializes a layout set in the given format.
func Encode(layouts grid.Layouts, format string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON, "":
		data, err = json.MarshalIndent(layouts, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case FormatYAML:
		data, err = yaml.Marshal(layouts)
	case FormatTOML:
		data, err = toml.Marshal(layouts)
	default:
		return nil, fmt.Errorf("unknown format '%s'", format)
	}
	if err != nil {
		return nil, fmt.Errorf("marshaling layouts: %w", err)
	}
	return data, nil
}

// WriteLayouts writes a layout set to fpath, returning the size. With dryRun
// nothing is written.
func WriteLayouts(layouts grid.Layouts, fpath, format string, dryRun bool) (int, error) {
	data, err := Encode(layouts, format)
	if err != nil {
		return 0, err
	}
	size := len(data)

	if !dryRun {
		if err := os.WriteFile(fpath, data, 0644); err != nil {
			return 0, fmt.Errorf("writing %s: %w", fpath, err)
		}
	}

	fmt.Printf("  %s: %d breakpoints, %d items, %s bytes\n",
		filepath.Base(fpath), len(layouts), countItems(layouts), formatSize(size))
	return size, nil
}

func countItems(layouts grid.Layouts) int {
	n := 0
	for _, l := range layouts {
		n += len(l)
	}
	return n
}

func formatSize(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	s := fmt.Sprintf("%d", n)
	// insert commas
	var result []byte
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

// Push uploads a layout set to a running gridlayout server.
func Push(set string, layouts grid.Layouts, serverURL, token string) error {
	data, err := json.Marshal(layouts)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/v1/sets/%s", strings.TrimRight(serverURL, "/"), url.PathEscape(set))
	req, err := http.NewRequest(http.MethodPut, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("pushing layout set: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	fmt.Printf("  pushed %s: %d breakpoints\n", set, len(layouts))
	return nil
}
