package target_test

import (
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"go.followtheprocess.codes/snip/internal/codegen"
	"go.followtheprocess.codes/snip/internal/encode"
	"go.followtheprocess.codes/snip/internal/options"
	"go.followtheprocess.codes/snip/internal/spec"
	"go.followtheprocess.codes/snip/internal/target"
	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/txtar"
	"go.uber.org/goleak"
)

var update = flag.Bool("update", false, "Update golden files")

// TestGolden generates a snippet for every archive under testdata/golden and compares
// it against want.txt.
//
// Each archive holds the target id in "target", the request in "request.json" and
// optionally the user's options in "options.json".
func TestGolden(t *testing.T) {
	test.ColorEnabled(os.Getenv("CI") == "")

	registry, err := target.Registry()
	test.Ok(t, err)

	files, err := filepath.Glob(filepath.Join("testdata", "golden", "*.txtar"))
	test.Ok(t, err)
	test.True(t, len(files) != 0, test.Context("no golden files found"))

	for _, file := range files {
		name := filepath.Base(file)
		t.Run(name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			archive, err := txtar.ParseFile(file)
			test.Ok(t, err)

			id, ok := archive.Read("target")
			test.True(t, ok, test.Context("%s missing target", file))

			src, ok := archive.Read("request.json")
			test.True(t, ok, test.Context("%s missing request.json", file))

			want, ok := archive.Read("want.txt")
			test.True(t, ok, test.Context("%s missing want.txt", file))

			var request spec.Request
			test.Ok(t, json.Unmarshal([]byte(src), &request))

			var raw map[string]any
			if opts, ok := archive.Read("options.json"); ok {
				test.Ok(t, json.Unmarshal([]byte(opts), &raw))
			}

			renderer, err := registry.Lookup(strings.TrimSpace(id))
			test.Ok(t, err)

			got, err := codegen.Generate(renderer, &request, raw)
			test.Ok(t, err)

			if *update {
				test.Ok(t, archive.Write("want.txt", got))
				test.Ok(t, txtar.DumpFile(file, archive))

				return
			}

			test.Diff(t, got, want)
		})
	}
}

func TestRegistry(t *testing.T) {
	registry, err := target.Registry()
	test.Ok(t, err)

	want := []string{
		"csharp-restsharp",
		"curl",
		"go-native",
		"http",
		"httpie",
		"java-okhttp",
		"js-jquery",
		"nodejs-native",
		"nodejs-unirest",
		"swift-urlsession",
	}

	test.EqualFunc(t, registry.Names(), want, slices.Equal)
}

func TestSchemas(t *testing.T) {
	for _, renderer := range target.All() {
		t.Run(renderer.Target().ID, func(t *testing.T) {
			schema := renderer.Options()
			test.Ok(t, options.Validate(schema))

			for _, descriptor := range schema {
				test.True(t, options.Known(descriptor.ID), test.Context("%s is not a known option", descriptor.ID))
			}

			info := renderer.Target()
			test.True(t, info.Label != "", test.Context("missing label"))
			test.True(t, info.Language != "", test.Context("missing language"))
		})
	}
}

// TestEveryBodyMode generates every target for every body mode, checking the
// properties all snippets share.
func TestEveryBodyMode(t *testing.T) {
	bodies := map[string]*spec.Body{
		"none": nil,
		"raw":  {Mode: spec.ModeRaw, Raw: "line one\nit's \"quoted\" \\ $HOME `x`"},
		"urlencoded": {
			Mode:       spec.ModeURLEncoded,
			URLEncoded: []spec.Param{{Key: "a b", Value: "c&d"}, {Key: "e", Value: "it's"}},
		},
		"formdata": {
			Mode: spec.ModeFormData,
			FormData: []spec.FormParam{
				{Key: "name", Type: spec.FormText, Value: "Jane \"J\""},
				{Key: "docs", Type: spec.FormFile, Src: []string{"/tmp/a.pdf", `C:\b.pdf`}},
			},
		},
		"file":    {Mode: spec.ModeFile, File: spec.FileSource{Src: "/tmp/body.bin"}},
		"graphql": {Mode: spec.ModeGraphQL, GraphQL: spec.GraphQL{Query: "{ me { id } }", Variables: `{"x": 1}`}},
	}

	for _, renderer := range target.All() {
		for mode, body := range bodies {
			t.Run(renderer.Target().ID+"/"+mode, func(t *testing.T) {
				request := spec.Request{
					Method:  http.MethodPost,
					URL:     spec.ParseURL("https://api.example.com/v1/items?q=1"),
					Headers: []spec.Header{{Key: "X-Trace", Value: "abc"}},
					Body:    body,
				}

				first, err := codegen.Generate(renderer, cloned(request), nil)
				test.Ok(t, err)

				second, err := codegen.Generate(renderer, cloned(request), nil)
				test.Ok(t, err)

				test.Equal(t, first, second, test.Context("output is not deterministic"))
				test.True(t, strings.HasSuffix(first, "\n"), test.Context("snippet does not end in a newline"))
				test.True(t, !strings.HasSuffix(first, "\n\n"), test.Context("snippet ends in a blank line"))
				test.True(t, strings.Contains(first, "X-Trace"), test.Context("header missing from:\n%s", first))
				test.True(t, strings.Count(first, "boundary="+encode.Boundary) <= 1, test.Context("boundary duplicated in:\n%s", first))
			})
		}
	}
}

func TestGETDropsBody(t *testing.T) {
	request := spec.Request{
		Method: http.MethodGet,
		URL:    spec.ParseURL("https://api.example.com/items"),
		Body:   &spec.Body{Mode: spec.ModeRaw, Raw: "secret-payload"},
	}

	// These targets only send a body for methods that allow one
	for _, renderer := range []codegen.Renderer{
		target.OkHTTP{},
		target.NodeNative{},
		target.Unirest{},
		target.JQuery{},
		target.Swift{},
		target.RestSharp{},
		target.GoNative{},
	} {
		t.Run(renderer.Target().ID, func(t *testing.T) {
			got, err := codegen.Generate(renderer, cloned(request), nil)
			test.Ok(t, err)
			test.True(t, !strings.Contains(got, "secret-payload"), test.Context("GET body in:\n%s", got))
		})
	}
}

func TestSnippetContents(t *testing.T) {
	formdata := &spec.Body{
		Mode: spec.ModeFormData,
		FormData: []spec.FormParam{
			{Key: "name", Value: "Jane"},
			{Key: "avatar", Type: spec.FormFile, Src: []string{"/tmp/pic.png"}},
		},
	}

	tests := []struct {
		renderer codegen.Renderer // The target under test
		body     *spec.Body       // Request body
		options  map[string]any   // User options
		name     string           // Name of the test case
		want     []string         // Fragments the snippet must contain
	}{
		{
			name:     "unirest formdata",
			renderer: target.Unirest{},
			body:     formdata,
			want: []string{
				"var unirest = require('unirest');",
				"var req = unirest('POST', 'https://api.example.com/items')",
				"  .field('name', 'Jane')",
				"  .attach('avatar', '/tmp/pic.png')",
				"  .end(function (res) {",
			},
		},
		{
			name:     "unirest no redirect",
			renderer: target.Unirest{},
			options:  map[string]any{options.FollowRedirect: false, options.RequestTimeout: 500},
			want:     []string{"  .timeout(500)", "  .followRedirect(false)"},
		},
		{
			name:     "jquery formdata",
			renderer: target.JQuery{},
			body:     formdata,
			want: []string{
				"var form = new FormData();",
				`form.append("name", "Jane");`,
				`form.append("avatar", fileInput.files[0], "pic.png");`,
				`  "processData": false,`,
				`  "data": form`,
				"$.ajax(settings).done(function (response) {",
			},
		},
		{
			name:     "jquery urlencoded",
			renderer: target.JQuery{},
			body:     &spec.Body{Mode: spec.ModeURLEncoded, URLEncoded: []spec.Param{{Key: "a", Value: "1"}}},
			want:     []string{`  "timeout": 0,`, "  \"data\": {\n    \"a\": \"1\"\n  }"},
		},
		{
			name:     "swift raw",
			renderer: target.Swift{},
			body:     &spec.Body{Mode: spec.ModeRaw, Raw: `{"a": 1}`},
			options:  map[string]any{options.RequestTimeout: 2500},
			want: []string{
				`let parameters = "{\"a\": 1}"`,
				`var request = URLRequest(url: URL(string: "https://api.example.com/items")!, timeoutInterval: 2.5)`,
				`request.addValue("abc", forHTTPHeaderField: "X-Trace")`,
				`request.httpMethod = "POST"`,
				"request.httpBody = postData",
			},
		},
		{
			name:     "restsharp file",
			renderer: target.RestSharp{},
			body:     &spec.Body{Mode: spec.ModeFile, File: spec.FileSource{Src: "/tmp/a.bin"}},
			want: []string{
				`var client = new RestClient("https://api.example.com/items");`,
				"client.Timeout = -1;",
				"var request = new RestRequest(Method.POST);",
				`request.AddHeader("Content-Type", "text/plain");`,
				`request.AddParameter("text/plain", "<file contents here>", ParameterType.RequestBody);`,
			},
		},
		{
			name:     "restsharp boilerplate",
			renderer: target.RestSharp{},
			body:     formdata,
			options:  map[string]any{options.IncludeBoilerplate: true},
			want: []string{
				"using RestSharp;",
				"class Program\n{\n  static void Main(string[] args)\n  {\n",
				`    request.AddFile("avatar", "/tmp/pic.png");`,
				"  }\n}\n",
			},
		},
		{
			name:     "okhttp formdata",
			renderer: target.OkHTTP{},
			body:     formdata,
			want: []string{
				"RequestBody body = new MultipartBody.Builder().setType(MultipartBody.FORM)",
				`  .addFormDataPart("name", "Jane")`,
				`  .addFormDataPart("avatar", "pic.png",`,
				`    RequestBody.create(MediaType.parse("application/octet-stream"),`,
				`    new File("/tmp/pic.png")))`,
				`  .method("POST", body)`,
			},
		},
		{
			name:     "httpie raw pipe",
			renderer: target.HTTPie{},
			body:     &spec.Body{Mode: spec.ModeRaw, Raw: "it's"},
			want:     []string{`printf '%s' 'it'\''s' | http --follow POST 'https://api.example.com/items'`},
		},
		{
			name:     "httpie file redirect",
			renderer: target.HTTPie{},
			body:     &spec.Body{Mode: spec.ModeFile, File: spec.FileSource{Src: "/tmp/a.bin"}},
			options:  map[string]any{options.MultiLine: false, options.RequestTimeout: 1000},
			want:     []string{"http --follow --timeout=1 POST 'https://api.example.com/items' 'X-Trace:abc' 'Content-Type:text/plain' < '/tmp/a.bin'"},
		},
		{
			name:     "go formdata sends the multipart stream",
			renderer: target.GoNative{},
			body:     formdata,
			want: []string{
				`payload := strings.NewReader("------WebKitFormBoundary7MA4YWxkTrZu0gW\r\nContent-Disposition: form-data; name=\"name\"\r\n\r\nJane\r\n`,
				`req.Header.Add("Content-Type", "multipart/form-data; boundary=----WebKitFormBoundary7MA4YWxkTrZu0gW")`,
				"client := &http.Client{}",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := &spec.Request{
				Method:  http.MethodPost,
				URL:     spec.ParseURL("https://api.example.com/items"),
				Headers: []spec.Header{{Key: "X-Trace", Value: "abc"}},
				Body:    tt.body,
			}

			got, err := codegen.Generate(tt.renderer, request, tt.options)
			test.Ok(t, err)

			for _, fragment := range tt.want {
				test.True(t, strings.Contains(got, fragment), test.Context("%q missing from:\n%s", fragment, got))
			}
		})
	}
}

func TestUntrustedValues(t *testing.T) {
	tests := []struct {
		renderer codegen.Renderer // The target under test
		request  spec.Request     // The request to render
		options  map[string]any   // User options
		name     string           // Name of the test case
		want     []string         // Fragments the snippet must contain
		notWant  []string         // Fragments the snippet must not contain
	}{
		{
			name:     "curl keeps url escapes",
			renderer: target.Curl{},
			request:  spec.Request{URL: spec.ParseURL("https://example.com/a%20b/c%2Fd?flag&q=1")},
			want:     []string{"curl --location --request GET 'https://example.com/a%20b/c%2Fd?flag&q=1'"},
		},
		{
			name:     "curl method is not shell code",
			renderer: target.Curl{},
			request:  spec.Request{Method: "GET $(touch /tmp/x)", URL: spec.ParseURL("https://example.com")},
			want:     []string{"curl --location --request GET 'https://example.com'"},
			notWant:  []string{"$("},
		},
		{
			name:     "curl quotes token method",
			renderer: target.Curl{},
			request:  spec.Request{Method: "get|id", URL: spec.ParseURL("https://example.com")},
			want:     []string{"--request 'GET|ID' 'https://example.com'"},
		},
		{
			name:     "httpie method is not shell code",
			renderer: target.HTTPie{},
			request:  spec.Request{Method: "GET $(touch /tmp/x)", URL: spec.ParseURL("https://example.com")},
			want:     []string{"http --ignore-stdin --follow GET 'https://example.com'"},
			notWant:  []string{"$("},
		},
		{
			name:     "httpie quotes token method",
			renderer: target.HTTPie{},
			request:  spec.Request{Method: "purge&x", URL: spec.ParseURL("https://example.com")},
			want:     []string{"http --ignore-stdin --follow 'PURGE&X' 'https://example.com'"},
		},
		{
			name:     "http header cannot add lines",
			renderer: target.HTTP{},
			request: spec.Request{
				URL:     spec.ParseURL("https://example.com"),
				Headers: []spec.Header{{Key: "X-A", Value: "1\r\nEvil: yes"}},
			},
			want:    []string{"GET / HTTP/1.1\nHost: example.com\nX-A: 1 Evil: yes\n"},
			notWant: []string{"\nEvil: yes", "\r"},
		},
		{
			name:     "curl windows newline stays in the literal",
			renderer: target.Curl{},
			request: spec.Request{
				Method: http.MethodPost,
				URL:    spec.ParseURL("https://example.com"),
				Body:   &spec.Body{Mode: spec.ModeRaw, Raw: "line1\nline2 & del x"},
			},
			options: map[string]any{options.ShellType: "windows"},
			want:    []string{"--data-raw \"line1\"^\n\n\"line2 & del x\""},
		},
		{
			name:     "swift unicode escapes",
			renderer: target.Swift{},
			request: spec.Request{
				Method: http.MethodPost,
				URL:    spec.ParseURL("https://example.com"),
				Body:   &spec.Body{Mode: spec.ModeRaw, Raw: "a\x01b"},
			},
			want:    []string{`let parameters = "a\u{1}b"`},
			notWant: []string{`\u0001`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := codegen.Generate(tt.renderer, cloned(tt.request), tt.options)
			test.Ok(t, err)

			for _, fragment := range tt.want {
				test.True(t, strings.Contains(got, fragment), test.Context("%q missing from:\n%s", fragment, got))
			}

			for _, fragment := range tt.notWant {
				test.True(t, !strings.Contains(got, fragment), test.Context("%q unexpected in:\n%s", fragment, got))
			}
		})
	}
}

// cloned returns a pointer to a deep copy of request.
func cloned(request spec.Request) *spec.Request {
	clone := request.Clone()
	return &clone
}
