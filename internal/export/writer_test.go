package export

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/grid"
)

func testLayouts() grid.Layouts {
	return grid.Layouts{
		"lg": {
			{ID: "notes", X: 0, Y: 0, W: 6, H: 4, MinW: grid.Bound(2)},
			{ID: "timer", X: 6, Y: 0, W: 6, H: 2, Static: true},
		},
		"sm": {{ID: "notes", X: 0, Y: 0, W: 4, H: 4}},
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"out.json", FormatJSON},
		{"out.YAML", FormatYAML},
		{"out.yml", FormatYAML},
		{"out.toml", FormatTOML},
		{"out", FormatJSON},
	}
	for _, tt := range tests {
		if got := FormatFor(tt.path); got != tt.want {
			t.Errorf("FormatFor(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestWriteLayoutsFormats(t *testing.T) {
	dir := t.TempDir()
	want := testLayouts()

	decoders := map[string]func([]byte, interface{}) error{
		FormatJSON: json.Unmarshal,
		FormatYAML: yaml.Unmarshal,
		FormatTOML: toml.Unmarshal,
	}
	for format, decode := range decoders {
		path := filepath.Join(dir, "layouts."+format)
		size, err := WriteLayouts(want, path, format, false)
		if err != nil {
			t.Fatalf("%s: WriteLayouts error: %v", format, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if size != len(data) {
			t.Errorf("%s: size = %d, file has %d bytes", format, size, len(data))
		}

		var got grid.Layouts
		if err := decode(data, &got); err != nil {
			t.Fatalf("%s: decode error: %v", format, err)
		}
		if len(got["lg"]) != 2 || !got["lg"][1].Static || got["lg"][0].MinW == nil {
			t.Errorf("%s: decoded lg = %v", format, got["lg"])
		}
	}
}

func TestWriteLayoutsDryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.json")
	size, err := WriteLayouts(testLayouts(), path, FormatJSON, true)
	if err != nil {
		t.Fatal(err)
	}
	if size == 0 {
		t.Error("dry run should still report the size")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("dry run wrote a file")
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	if _, err := Encode(testLayouts(), "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{750000, "750,000"},
		{1234567, "1,234,567"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.n); got != tt.want {
			t.Errorf("formatSize(%d) = %s, want %s", tt.n, got, tt.want)
		}
	}
}

func TestPush(t *testing.T) {
	var gotPath, gotAuth, gotMethod string
	var gotBody grid.Layouts
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := Push("copilot", testLayouts(), srv.URL+"/", "secret"); err != nil {
		t.Fatalf("Push error: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/v1/sets/copilot" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if len(gotBody["lg"]) != 2 {
		t.Errorf("body lg = %v", gotBody["lg"])
	}
}

func TestPushError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "layout invalid", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	err := Push("copilot", testLayouts(), srv.URL, "")
	if err == nil || !strings.Contains(err.Error(), "422") || !strings.Contains(err.Error(), "layout invalid") {
		t.Errorf("Push error = %v, want 422 with body", err)
	}
}
