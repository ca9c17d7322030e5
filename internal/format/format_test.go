package format_test

import (
	"bytes"
	"errors"
	"flag"
	"net/http"
	"os"
	"strings"
	"testing"

	"go.followtheprocess.codes/snapshot"
	"go.followtheprocess.codes/snip/internal/format"
	"go.followtheprocess.codes/snip/internal/spec"
	"go.followtheprocess.codes/test"
)

var (
	update = flag.Bool("update", false, "Update snapshots")
	clean  = flag.Bool("clean", false, "Clean all snapshots and recreate")
)

func TestImporterFor(t *testing.T) {
	tests := []struct {
		want    format.Importer // Expected importer
		name    string          // Name of the test case
		path    string          // Path to the request file
		wantErr bool            // Whether we want an error
	}{
		{name: "json", path: "requests.json", want: format.JSONImporter{}},
		{name: "yaml", path: "dir/requests.yaml", want: format.YAMLImporter{}},
		{name: "yml upper", path: "REQUESTS.YML", want: format.YAMLImporter{}},
		{name: "toml", path: "requests.toml", want: format.TOMLImporter{}},
		{name: "http file", path: "requests.http", wantErr: true},
		{name: "no extension", path: "requests", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := format.ImporterFor(tt.path)
			test.WantErr(t, err, tt.wantErr)

			if tt.wantErr {
				test.True(t, errors.Is(err, format.ErrUnknownFormat))
				return
			}

			test.Equal(t, got, tt.want)
		})
	}
}

func TestImport(t *testing.T) {
	tests := []struct {
		importer format.Importer // The importer under test
		name     string          // Name of the test case
		src      string          // Request file contents
	}{
		{
			name:     "json",
			importer: format.JSONImporter{},
			src: `{
  "name": "items",
  "requests": [
    {
      "name": "create",
      "method": "POST",
      "url": "https://api.com/items",
      "headers": [{"key": "Content-Type", "value": "application/json"}],
      "body": {"mode": "raw", "raw": "{}"}
    }
  ]
}`,
		},
		{
			name:     "yaml",
			importer: format.YAMLImporter{},
			src: `name: items
requests:
  - name: create
    method: POST
    url: https://api.com/items
    headers:
      - key: Content-Type
        value: application/json
    body:
      mode: raw
      raw: "{}"
`,
		},
		{
			name:     "toml",
			importer: format.TOMLImporter{},
			src: `name = "items"

[[requests]]
name = "create"
method = "POST"
url = "https://api.com/items"
headers = [{ key = "Content-Type", value = "application/json" }]
body = { mode = "raw", raw = "{}" }
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := tt.importer.Import(strings.NewReader(tt.src))
			test.Ok(t, err)

			test.Equal(t, file.Name, "items")
			test.Equal(t, len(file.Requests), 1)

			request := file.Requests[0]
			test.Equal(t, request.Name, "create")
			test.Equal(t, request.Method, http.MethodPost)
			test.Equal(t, request.URL.String(), "https://api.com/items")
			test.Equal(t, request.Body.Mode, spec.ModeRaw)
			test.Equal(t, request.Body.Raw, "{}")

			value, ok := request.HeaderValue("content-type")
			test.True(t, ok)
			test.Equal(t, value, "application/json")
		})
	}
}

func TestImportErrors(t *testing.T) {
	_, err := format.JSONImporter{}.Import(strings.NewReader(`{"requests": [], "surprise": true}`))
	test.Err(t, err, test.Context("unknown JSON fields should be rejected"))

	_, err = format.YAMLImporter{}.Import(strings.NewReader("requests: [unterminated"))
	test.Err(t, err)

	_, err = format.TOMLImporter{}.Import(strings.NewReader("requests = "))
	test.Err(t, err)
}

func TestExporterFor(t *testing.T) {
	for _, name := range format.Names() {
		exporter, err := format.ExporterFor(name)
		test.Ok(t, err)
		test.True(t, exporter != nil)
	}

	_, err := format.ExporterFor("xml")
	test.Err(t, err)
	test.True(t, errors.Is(err, format.ErrUnknownFormat))
}

func TestTextExporter(t *testing.T) {
	tests := []struct {
		name string          // Name of the test case
		doc  format.Document // The document to export
	}{
		{
			name: "empty",
			doc:  format.Document{Name: "empty"},
		},
		{
			name: "single",
			doc: format.Document{
				Name: "single",
				Snippets: []format.Snippet{
					{Request: "list", Target: "curl", Code: "curl --location --request GET 'https://api.com/items'\n"},
				},
			},
		},
		{
			name: "multiple",
			doc: format.Document{
				Name: "multiple",
				Snippets: []format.Snippet{
					{Request: "list", Target: "curl", Code: "curl --location --request GET 'https://api.com/items'\n"},
					{Request: "list", Target: "http", Code: "GET /items HTTP/1.1\nHost: api.com\n"},
					{Request: "#2", Target: "curl", Code: "curl --location --request DELETE 'https://api.com/items/1'\n"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := snapshot.New(
				t,
				snapshot.Update(*update),
				snapshot.Clean(*clean),
				snapshot.Color(os.Getenv("CI") == ""),
			)

			buf := &bytes.Buffer{}
			test.Ok(t, format.TextExporter{}.Export(buf, tt.doc))

			snap.Snap(buf.String())
		})
	}
}

func TestTextExporterLayout(t *testing.T) {
	doc := format.Document{
		Snippets: []format.Snippet{
			{Request: "a", Target: "curl", Code: "one\n"},
			{Request: "b", Target: "http", Code: "two\n"},
		},
	}

	buf := &bytes.Buffer{}
	test.Ok(t, format.TextExporter{}.Export(buf, doc))

	test.Diff(t, buf.String(), "### a (curl)\n\none\n\n### b (http)\n\ntwo\n")
}

func TestJSONExporter(t *testing.T) {
	doc := format.Document{
		Name: "items",
		Snippets: []format.Snippet{
			{Request: "list", Target: "http", Code: "GET /items HTTP/1.1\n"},
		},
	}

	buf := &bytes.Buffer{}
	test.Ok(t, format.JSONExporter{}.Export(buf, doc))

	want := `{
  "name": "items",
  "snippets": [
    {
      "request": "list",
      "target": "http",
      "code": "GET /items HTTP/1.1\n"
    }
  ]
}
`
	test.Diff(t, buf.String(), want)
}

func TestStructuredExporters(t *testing.T) {
	doc := format.Document{
		Snippets: []format.Snippet{
			{Request: "list", Target: "curl", Code: "curl 'https://api.com'\n"},
		},
	}

	for _, name := range []string{format.YAML, format.TOML} {
		t.Run(name, func(t *testing.T) {
			exporter, err := format.ExporterFor(name)
			test.Ok(t, err)

			buf := &bytes.Buffer{}
			test.Ok(t, exporter.Export(buf, doc))

			got := buf.String()
			test.True(t, strings.Contains(got, "list"), test.Context("request missing from %s", got))
			test.True(t, strings.Contains(got, "curl"), test.Context("target missing from %s", got))
		})
	}
}

func TestEncode(t *testing.T) {
	value := map[string]any{"id": "curl"}

	for _, name := range []string{format.JSON, format.YAML, format.TOML} {
		buf := &bytes.Buffer{}
		test.Ok(t, format.Encode(buf, name, value))
		test.True(t, strings.Contains(buf.String(), "curl"), test.Context("%s: %s", name, buf.String()))
	}

	err := format.Encode(&bytes.Buffer{}, format.Text, value)
	test.True(t, errors.Is(err, format.ErrUnknownFormat))
}
