package commands

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"xdao.co/c2patext/c2patext"
	"xdao.co/c2patext/cidutil"
	"xdao.co/c2patext/jumbf"
	"xdao.co/c2patext/status"
	"xdao.co/c2patext/validator"
)

// manifestStore returns a minimal strict-valid C2PA manifest store box.
func manifestStore() []byte {
	b := make([]byte, 32)
	binary.BigEndian.PutUint32(b[0:4], 32)
	copy(b[4:8], "jumb")
	binary.BigEndian.PutUint32(b[8:12], 24)
	copy(b[12:16], "jumd")
	copy(b[16:32], jumbf.C2PAManifestStoreUUID[:])
	return b
}

func run(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	t.Setenv("C2PATEXT_CONFIG", "")
	var out, errOut bytes.Buffer
	code = Run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, dir, name string, b []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, b, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return p
}

func TestEmbedExtract_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	storeDir := filepath.Join(dir, "store")
	m := manifestStore()
	textPath := writeFile(t, dir, "in.txt", []byte("Cafe\u0301 society"))
	manifestPath := writeFile(t, dir, "m.jumbf", m)
	embedded := filepath.Join(dir, "embedded.txt")

	code, _, stderr := run(t, "", "embed", "--text", textPath, "--manifest", manifestPath,
		"--validate", "--mode", "strict", "-o", embedded)
	if code != 0 {
		t.Fatalf("embed exit %d: %s", code, stderr)
	}

	manifestOut := filepath.Join(dir, "out.jumbf")
	code, stdout, stderr := run(t, "", "extract", "--store", "--store-dir", storeDir,
		"--manifest-out", manifestOut, embedded)
	if code != 0 {
		t.Fatalf("extract exit %d: %s", code, stderr)
	}
	if stdout != "Caf\u00e9 society" {
		t.Fatalf("clean text: got %q", stdout)
	}
	got, err := os.ReadFile(manifestOut)
	if err != nil || !bytes.Equal(got, m) {
		t.Fatalf("manifest out mismatch: %x, %v", got, err)
	}
	id := cidutil.CIDv1RawSHA256(m)
	if !strings.Contains(stderr, id) {
		t.Fatalf("expected cid %s in log: %s", id, stderr)
	}

	code, stdout, _ = run(t, "", "store", "has", "--store-dir", storeDir, id)
	if code != 0 || strings.TrimSpace(stdout) != "true" {
		t.Fatalf("store has: exit %d out %q", code, stdout)
	}
}

func TestEmbed_FromStoreByCID(t *testing.T) {
	dir := t.TempDir()
	storeDir := filepath.Join(dir, "store")
	m := manifestStore()

	code, stdout, stderr := run(t, string(m), "store", "put", "--store-dir", storeDir)
	if code != 0 {
		t.Fatalf("store put exit %d: %s", code, stderr)
	}
	id := strings.TrimSpace(stdout)

	code, stdout, stderr = run(t, "hello", "embed", "--text", "-", "--manifest-cid", id, "--store-dir", storeDir)
	if code != 0 {
		t.Fatalf("embed exit %d: %s", code, stderr)
	}
	ex, err := c2patext.ExtractManifest(stdout)
	if err != nil || !ex.Found || !bytes.Equal(ex.Manifest, m) {
		t.Fatalf("embedded output does not carry manifest: %+v, %v", ex, err)
	}
}

func TestEmbed_ValidateRejectsBadManifest(t *testing.T) {
	dir := t.TempDir()
	textPath := writeFile(t, dir, "in.txt", []byte("hello"))
	manifestPath := writeFile(t, dir, "m.jumbf", []byte("not a jumbf box"))

	code, stdout, stderr := run(t, "", "embed", "--text", textPath, "--manifest", manifestPath, "--validate")
	if code != 1 {
		t.Fatalf("exit: got %d want 1", code)
	}
	if stdout != "" {
		t.Fatalf("expected no output, got %q", stdout)
	}
	if !strings.Contains(stderr, "Validation failed") {
		t.Fatalf("expected validation report, got %q", stderr)
	}
}

func TestEmbed_UsageErrors(t *testing.T) {
	if code, _, _ := run(t, "", "embed", "--text", "-"); code != 2 {
		t.Fatalf("missing manifest: exit %d want 2", code)
	}
	if code, _, _ := run(t, "", "embed", "--manifest", "x"); code != 2 {
		t.Fatalf("missing --text: exit %d want 2", code)
	}
	if code, _, _ := run(t, "", "embed", "--text", "-", "--manifest-cid", "not-a-cid"); code != 2 {
		t.Fatalf("bad cid: exit %d want 2", code)
	}
	if code, _, _ := run(t, "", "frobnicate"); code != 2 {
		t.Fatalf("unknown command: exit %d want 2", code)
	}
	if code, _, _ := run(t, "", "extract", "--bogus"); code != 2 {
		t.Fatalf("unknown flag: exit %d want 2", code)
	}
}

func TestExtract_MultipleWrappers(t *testing.T) {
	m := manifestStore()
	text := "a" + c2patext.EncodeWrapper(m) + "b" + c2patext.EncodeWrapper(m)

	code, stdout, stderr := run(t, text, "extract")
	if code != 1 {
		t.Fatalf("exit: got %d want 1", code)
	}
	if stdout != "" || !strings.Contains(stderr, string(status.MultipleWrappers)) {
		t.Fatalf("unexpected output %q / %q", stdout, stderr)
	}

	code, stdout, _ = run(t, text, "extract", "--strip-all")
	if code != 0 || stdout != "ab" {
		t.Fatalf("--strip-all: exit %d out %q", code, stdout)
	}
}

func TestExtract_NoWrapper(t *testing.T) {
	code, stdout, _ := run(t, "e\u0301", "extract", "-")
	if code != 0 || stdout != "\u00e9" {
		t.Fatalf("exit %d out %q", code, stdout)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.jumbf", manifestStore())

	short := make([]byte, 16)
	binary.BigEndian.PutUint32(short[0:4], 16)
	copy(short[4:8], "jumb")
	shortPath := writeFile(t, dir, "short.jumbf", short)

	cases := []struct {
		name     string
		stdin    string
		args     []string
		wantCode int
		wantOut  string
	}{
		{"manifest valid strict", "", []string{"validate", "manifest", "--mode", "strict", good}, 0, "Validation passed"},
		{"manifest permissive", "", []string{"validate", "manifest", shortPath}, 0, "Validation passed"},
		{"manifest strict missing description", "", []string{"validate", "manifest", "--mode", "strict", shortPath}, 1, string(status.MissingDescriptionBox)},
		{"manifest empty", "", []string{"validate", "manifest", "-"}, 1, string(status.EmptyManifest)},
		{"manifest no jumbf", "", []string{"validate", "manifest", "--no-jumbf", "--mode", "strict", shortPath}, 0, "Validation passed"},
		{"wrapper valid", string(c2patext.WrapperBytes(manifestStore())), []string{"validate", "wrapper"}, 0, "Validation passed"},
		{"wrapper short", "C2PA", []string{"validate", "wrapper"}, 1, string(status.CorruptedWrapper)},
		{"text valid", "hi" + c2patext.EncodeWrapper(manifestStore()), []string{"validate", "text", "--mode", "strict"}, 0, "Validation passed"},
		{"text strict", "hi" + c2patext.EncodeWrapper(short), []string{"validate", "text", "--mode", "strict"}, 1, string(status.MissingDescriptionBox)},
		{"bad mode", "", []string{"validate", "manifest", "--mode", "lenient", good}, 2, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, stdout, stderr := run(t, tc.stdin, tc.args...)
			if code != tc.wantCode {
				t.Fatalf("exit: got %d want %d (stderr %q)", code, tc.wantCode, stderr)
			}
			if !strings.Contains(stdout, tc.wantOut) {
				t.Fatalf("stdout %q missing %q", stdout, tc.wantOut)
			}
		})
	}
}

func TestValidate_JSON(t *testing.T) {
	code, stdout, _ := run(t, "tiny", "validate", "manifest", "--json")
	if code != 1 {
		t.Fatalf("exit: got %d want 1", code)
	}
	var res validator.Result
	if err := json.Unmarshal([]byte(stdout), &res); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout, err)
	}
	if res.Valid || res.PrimaryCode() != status.InvalidJumbfHeader {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestValidate_ConfigDisablesJumbf(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "c.json", []byte(`{"validate_jumbf": false}`))
	code, stdout, _ := run(t, "tiny", "validate", "manifest", "--config", cfg)
	if code != 0 || !strings.Contains(stdout, "Validation passed") {
		t.Fatalf("exit %d out %q", code, stdout)
	}
}

func TestInspect(t *testing.T) {
	m := manifestStore()
	text := "\uFEFFx" + c2patext.EncodeWrapper(m)

	code, stdout, stderr := run(t, text, "inspect")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	for _, want := range []string{
		"wrappers: 1",
		"rejected: 1",
		"version=1 length=32",
		cidutil.CIDv1RawSHA256(m),
		`jumbf: type="jumb" size=32 effective=32 header=8`,
	} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("inspect output missing %q:\n%s", want, stdout)
		}
	}
}

func TestStore_GetListAndMissing(t *testing.T) {
	dir := t.TempDir()
	storeDir := filepath.Join(dir, "store")
	m := manifestStore()

	code, stdout, _ := run(t, string(m), "store", "put", "--store-dir", storeDir)
	if code != 0 {
		t.Fatalf("put exit %d", code)
	}
	id := strings.TrimSpace(stdout)

	out := filepath.Join(dir, "got.jumbf")
	if code, _, stderr := run(t, "", "store", "get", "--store-dir", storeDir, "-o", out, id); code != 0 {
		t.Fatalf("get exit %d: %s", code, stderr)
	}
	got, err := os.ReadFile(out)
	if err != nil || !bytes.Equal(got, m) {
		t.Fatalf("get bytes mismatch: %v", err)
	}

	code, stdout, _ = run(t, "", "store", "list", "--store-dir", storeDir)
	if code != 0 || strings.TrimSpace(stdout) != id {
		t.Fatalf("list: exit %d out %q", code, stdout)
	}

	missing := cidutil.CIDv1RawSHA256([]byte("missing"))
	if code, stdout, _ := run(t, "", "store", "has", "--store-dir", storeDir, missing); code != 1 || strings.TrimSpace(stdout) != "false" {
		t.Fatalf("has missing: exit %d out %q", code, stdout)
	}
	if code, _, _ := run(t, "", "store", "get", "--store-dir", storeDir, missing); code != 1 {
		t.Fatalf("get missing: exit %d want 1", code)
	}
	if code, _, _ := run(t, "", "store", "has", id); code != 2 {
		t.Fatalf("no store configured: exit %d want 2", code)
	}
}

func TestStore_ExportImport(t *testing.T) {
	dir := t.TempDir()
	src, dst := filepath.Join(dir, "src"), filepath.Join(dir, "dst")
	m := manifestStore()

	code, stdout, _ := run(t, string(m), "store", "put", "--store-dir", src)
	if code != 0 {
		t.Fatalf("put exit %d", code)
	}
	id := strings.TrimSpace(stdout)

	tarPath := filepath.Join(dir, "manifests.tar")
	if code, _, stderr := run(t, "", "store", "export", "--store-dir", src, "-o", tarPath); code != 0 {
		t.Fatalf("export exit %d: %s", code, stderr)
	}

	cfg := writeFile(t, dir, "strict.json", []byte(`{"mode": "strict"}`))
	code, stdout, stderr := run(t, "", "store", "import", "--config", cfg, "--require-valid", "--store-dir", dst, tarPath)
	if code != 0 {
		t.Fatalf("import exit %d: %s", code, stderr)
	}
	if strings.TrimSpace(stdout) != id {
		t.Fatalf("import output %q want %q", stdout, id)
	}
	if code, _, _ := run(t, "", "store", "has", "--store-dir", dst, id); code != 0 {
		t.Fatalf("manifest not imported")
	}
}
