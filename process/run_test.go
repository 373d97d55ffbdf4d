package process

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"docxfix/config"
	"docxfix/docx"
	"docxfix/docx/docxtest"
	"docxfix/state"
)

const sampleBody = `<w:p/>` +
	`<w:p><w:r><w:t></w:t></w:r></w:p>` +
	`<w:p><w:pPr><w:spacing w:after="4000"/></w:pPr><w:r><w:t>Content</w:t><w:br w:type="page"/></w:r></w:p>` +
	`<w:tbl><w:tblPr><w:tblCellSpacing w:w="100" w:type="dxa"/></w:tblPr>` +
	`<w:tblGrid><w:gridCol w:w="4000"/></w:tblGrid>` +
	`<w:tr><w:tc><w:p/></w:tc></w:tr></w:tbl>` +
	`<w:sectPr><w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/></w:sectPr>`

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	env.Cfg = cfg
	return ctx, env
}

func checkNormalized(t *testing.T, name string) {
	t.Helper()
	pkg, err := docx.Open(name)
	if err != nil {
		t.Fatalf("Open(%s) error = %v", name, err)
	}
	doc := pkg.Document()

	paras := doc.Paragraphs()
	if len(paras) != 1 || paras[0].Text() != "Content" {
		t.Fatalf("unexpected paragraphs in result: %d", len(paras))
	}
	if _, after, _ := paras[0].Spacing(); after != "0" {
		t.Errorf("space after = %q, want 0", after)
	}
	if paras[0].Runs()[0].PageBreaks() != 0 {
		t.Error("page break was not removed")
	}
	if doc.Tables()[0].HasCellSpacing() {
		t.Error("cell spacing was not removed")
	}
	m, _ := doc.Sections()[0].Margins()
	if m != (docx.Margins{Top: 720, Bottom: 720, Left: 1080, Right: 1080}) {
		t.Errorf("margins = %+v", m)
	}
}

func TestProcess_DefaultOutput(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	src := docxtest.Write(t, sampleBody)

	if err := process(ctx, src, "", state.EnvFromContext(ctx).Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	checkNormalized(t, filepath.Join(filepath.Dir(src), "fixed_input.docx"))

	// source is left alone
	if got := docxtest.ReadPart(t, src, "word/document.xml"); got != docxtest.DocumentXML(sampleBody) {
		t.Error("source document was modified")
	}
}

func TestProcess_ExplicitOutput(t *testing.T) {
	ctx, env := setupTestEnv(t)
	env.Cfg.Output.FixZip = true
	src := docxtest.Write(t, sampleBody)
	dst := filepath.Join(t.TempDir(), "out.docx")

	if err := process(ctx, src, dst, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	checkNormalized(t, dst)

	r, err := zip.OpenReader(dst)
	if err != nil {
		t.Fatalf("open result: %v", err)
	}
	defer r.Close()
	for _, f := range r.File {
		if f.Flags&0x8 != 0 {
			t.Errorf("part %s has data descriptor", f.Name)
		}
	}
}

func TestProcess_OverwritesOutput(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := docxtest.Write(t, sampleBody)
	dst := filepath.Join(t.TempDir(), "out.docx")
	if err := os.WriteFile(dst, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := process(ctx, src, dst, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	checkNormalized(t, dst)
}

func TestProcess_Errors(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()

	text := filepath.Join(dir, "notes.docx")
	if err := os.WriteFile(text, []byte("plain text, not a package"), 0644); err != nil {
		t.Fatal(err)
	}
	noMain := docxtest.WriteParts(t, filepath.Join(dir, "nomain.docx"), []docxtest.Part{
		{Name: "[Content_Types].xml", Data: docxtest.ContentTypes},
		{Name: "word/styles.xml", Data: docxtest.Styles},
	})

	tests := []struct {
		name string
		src  string
		dst  string
		want string
	}{
		{"missing input", filepath.Join(dir, "absent.docx"), "", "input file '" + filepath.Join(dir, "absent.docx") + "' not found"},
		{"directory", dir, "", "input is not a regular file"},
		{"not a zip", text, "", "input was not recognized as docx document"},
		{"no main part", noMain, "", "unable to load document"},
		{"unwritable output", docxtest.Write(t, sampleBody), filepath.Join(dir, "absent", "out.docx"), "unable to save document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := process(ctx, tt.src, tt.dst, env.Log)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestProcess_CancelledContext(t *testing.T) {
	ctx, env := setupTestEnv(t)
	cancelCtx, cancel := context.WithCancel(ctx)
	cancel()

	src := docxtest.Write(t, sampleBody)
	if err := process(cancelCtx, src, "", env.Log); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(src), "fixed_input.docx")); !os.IsNotExist(err) {
		t.Error("output must not be written for cancelled context")
	}
}

func TestProcess_Report(t *testing.T) {
	ctx, env := setupTestEnv(t)
	reportName := filepath.Join(t.TempDir(), "report.zip")
	rpt, err := (&config.ReporterConfig{Destination: reportName}).Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	env.Rpt = rpt

	src := docxtest.Write(t, sampleBody)
	if err := process(ctx, src, "", env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if err := rpt.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	r, err := zip.OpenReader(reportName)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer r.Close()
	got := make(map[string]bool)
	for _, f := range r.File {
		got[f.Name] = true
	}
	for _, want := range []string{"MANIFEST", "source.docx", "outline-before.txt", "outline-after.txt", "result.docx"} {
		if !got[want] {
			t.Errorf("report is missing %s, has %v", want, got)
		}
	}
}

func TestRun(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	src := docxtest.Write(t, sampleBody)
	dst := filepath.Join(t.TempDir(), "result.docx")

	cmd := &cli.Command{Name: "normalize", Action: Run}
	if err := cmd.Run(ctx, []string{"normalize", src, dst, "extra"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	checkNormalized(t, dst)
}

func TestRun_NoInput(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	cmd := &cli.Command{Name: "normalize", Action: Run}
	if err := cmd.Run(ctx, []string{"normalize"}); err == nil {
		t.Fatal("expected error without input")
	}
}
