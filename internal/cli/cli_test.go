package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// writePNG writes a w x h opaque PNG into dir and returns its path.
func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: 200, A: 255})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadContent(t *testing.T) {
	path := writePNG(t, t.TempDir(), "brand-logo.png", 100, 60)
	c, img, err := loadContent(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Key != "brand-logo" || c.Width != 100 || c.Height != 60 || c.Path != path {
		t.Errorf("content = %+v", c)
	}
	if img.Bounds().Dx() != 100 {
		t.Errorf("image width = %d", img.Bounds().Dx())
	}
}

func TestLoadContentErrors(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := loadContent(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected an error for a missing file")
	}
	bad := filepath.Join(dir, "bad.png")
	os.WriteFile(bad, []byte("not an image"), 0o644)
	if _, _, err := loadContent(bad); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Errorf("err = %v, want a decode error", err)
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("expected the default logger")
	}
	l := newLogger(&bytes.Buffer{}, log.DebugLevel)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("logger not carried by context")
	}
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

const dragScript = `{"steps":[
	{"action":"snapshot","label":"before"},
	{"action":"drag","fromX":50,"fromY":30,"toX":150,"toY":130,"frames":4}
]}`

func TestScriptCommand(t *testing.T) {
	dir := t.TempDir()
	logo := writePNG(t, dir, "logo.png", 100, 60)
	script := filepath.Join(dir, "drag.json")
	os.WriteFile(script, []byte(dragScript), 0o644)

	out := execute(t, "script", script, "--sticker", logo)

	var res scriptResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if !res.Present || res.Sticker == nil {
		t.Fatalf("no sticker in result: %s", out)
	}
	if res.Sticker.X != 100 || res.Sticker.Y != 100 {
		t.Errorf("sticker at (%v, %v), want (100, 100)", res.Sticker.X, res.Sticker.Y)
	}
	if res.Orientation != "portrait" || res.Cursor != 1 || res.Entries != 2 {
		t.Errorf("result = %+v", res)
	}
	if len(res.Snapshots) != 1 || res.Snapshots[0] != "before" {
		t.Errorf("snapshots = %v", res.Snapshots)
	}
}

func TestScriptSaveAndConfigShow(t *testing.T) {
	dir := t.TempDir()
	storeDir := filepath.Join(dir, "store")
	logo := writePNG(t, dir, "logo.png", 100, 60)
	script := filepath.Join(dir, "fit.json")
	os.WriteFile(script, []byte(`{"steps":[{"action":"scale","mode":"fit"}]}`), 0o644)

	out := execute(t, "script", script, "--sticker", logo, "--save", "--config", "shop", "--store", storeDir)
	var res scriptResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatal(err)
	}
	if res.ConfigID != "shop" {
		t.Fatalf("config id = %q, want shop", res.ConfigID)
	}

	shown := execute(t, "config", "show", "shop", "--store", storeDir)
	for _, want := range []string{`"scale": "fit"`, `"key": "logo"`} {
		if !strings.Contains(shown, want) {
			t.Errorf("config show missing %s:\n%s", want, shown)
		}
	}

	execute(t, "config", "rm", "shop", "--store", storeDir)
	if _, err := os.Stat(filepath.Join(storeDir, "shop.json")); !os.IsNotExist(err) {
		t.Errorf("config file still present: %v", err)
	}
}

func TestScriptRestoresStoredContent(t *testing.T) {
	dir := t.TempDir()
	storeDir := filepath.Join(dir, "store")
	logo := writePNG(t, dir, "logo.png", 100, 60)
	noop := filepath.Join(dir, "noop.json")
	os.WriteFile(noop, []byte(`{"steps":[{"action":"wait","frames":1}]}`), 0o644)

	execute(t, "script", noop, "--sticker", logo, "--save", "--config", "again", "--store", storeDir)

	// The stored content path is re-attached without --sticker.
	out := execute(t, "script", noop, "--config", "again", "--store", storeDir)
	var res scriptResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatal(err)
	}
	if !res.Present || res.Sticker.Width != 100 {
		t.Errorf("result = %+v", res)
	}
}

func TestScriptRejectsBadScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "bad.json")
	os.WriteFile(script, []byte(`{"steps":[{"action":"fly"}]}`), 0o644)

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"script", script})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("expected an error")
	}
}

func TestScriptRestoresCustomPlacement(t *testing.T) {
	dir := t.TempDir()
	storeDir := filepath.Join(dir, "store")
	logo := writePNG(t, dir, "logo.png", 100, 60)
	drag := filepath.Join(dir, "drag.json")
	os.WriteFile(drag, []byte(dragScript), 0o644)
	noop := filepath.Join(dir, "noop.json")
	os.WriteFile(noop, []byte(`{"steps":[{"action":"wait","frames":1}]}`), 0o644)

	execute(t, "script", drag, "--sticker", logo, "--save", "--config", "moved", "--store", storeDir)

	out := execute(t, "script", noop, "--config", "moved", "--store", storeDir)
	var res scriptResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatal(err)
	}
	if !res.Present || res.Sticker.X != 100 || res.Sticker.Y != 100 {
		t.Errorf("restored sticker = %+v, want at (100, 100)", res.Sticker)
	}
}
