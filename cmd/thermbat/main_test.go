package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/store/fsstore"
)

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

// writeTestConfig points the fs backend at a fresh archive directory.
func writeTestConfig(t *testing.T) (configPath, root string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("THERMBAT_BUCKET", "")
	dir := t.TempDir()
	root = filepath.Join(dir, "archive")
	configPath = filepath.Join(dir, "thermbat.toml")
	content := fmt.Sprintf("[store]\nbackend = \"fs\"\nroot = %q\n\n[logging]\nlevel = \"info\"\nformat = \"json\"\n", root)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath, root
}

func saveWorkbook(t *testing.T, name string, cells map[string]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for cell, v := range cells {
		if err := f.SetCellValue("Sheet1", cell, v); err != nil {
			t.Fatalf("set %s: %v", cell, err)
		}
	}
	path := filepath.Join(t.TempDir(), name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func designWorkbook(t *testing.T) string {
	return saveWorkbook(t, "design.xlsx", map[string]any{
		"B5": "Battery Code", "D5": "48", "E5": "48",
		"B6": "Build No", "D6": 1, "E6": 2,
		"B7": "Temperature of Discharge", "C7": "°C", "D7": 25, "E7": 80,
	})
}

func TestConvertAutoDetectsLayout(t *testing.T) {
	input := saveWorkbook(t, "temps.xlsx", map[string]any{
		"B4": "Time", "C4": "T1", "D4": "T2", "E4": "T3",
		"B5": 0, "C5": 20, "D5": 21, "E5": 22,
		"B6": 5, "C6": 30, "D6": 31, "E6": 32,
	})

	stdout, stderr, err := runCLI(t, []string{"convert", input, "--pretty=false"}, "")
	if err != nil {
		t.Fatalf("convert failed: %v (stderr: %s)", err, stderr)
	}
	requireContains(t, stdout, `[{"Time":0,"T1":20,"T2":21,"T3":22},{"Time":5,"T1":30,"T2":31,"T3":32}]`)
	requireContains(t, stderr, "Detected layout: temperature_series")
}

func TestInspect(t *testing.T) {
	input := saveWorkbook(t, "profile.xlsx", map[string]any{
		"B2": "Duration", "C2": "Current", "D2": "Voltage",
		"B3": 100, "C3": 2.5, "D3": 28,
	})

	stdout, _, err := runCLI(t, []string{"inspect", input}, "")
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	requireContains(t, stdout, "Sheet1")
	requireContains(t, stdout, "B2:D3")
	requireContains(t, stdout, "1.00")
	requireContains(t, stdout, "discharge_profile")

	if _, _, err := runCLI(t, []string{"inspect", input, "--sheet", "Missing"}, ""); err == nil {
		t.Fatal("expected error for unknown sheet")
	}
}

func TestConvertWritesOutputFile(t *testing.T) {
	input := designWorkbook(t)
	out := filepath.Join(t.TempDir(), "design.json")

	if _, _, err := runCLI(t, []string{"convert", input, "-k", "design", "-o", out}, ""); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	requireContains(t, string(data), `"Battery-48_Build-2": [`)
	requireContains(t, string(data), `"Temperature of Discharge (°C)": 80`)
}

func TestConvertErrors(t *testing.T) {
	if _, _, err := runCLI(t, []string{"convert", filepath.Join(t.TempDir(), "missing.xlsx")}, ""); err == nil {
		t.Fatal("expected error for missing file")
	}

	input := saveWorkbook(t, "noise.xlsx", map[string]any{"A1": "a", "B2": "b"})
	_, _, err := runCLI(t, []string{"convert", input}, "")
	if err == nil {
		t.Fatal("expected error for unrecognized sheet")
	}
	requireContains(t, err.Error(), "format not recognized")

	_, _, err = runCLI(t, []string{"convert", input, "-k", "xls"}, "")
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	requireContains(t, err.Error(), "unknown data kind")
}

func TestVerifyReportsViolations(t *testing.T) {
	stdout, _, err := runCLI(t, []string{"verify", designWorkbook(t)}, "")
	if err == nil {
		t.Fatal("expected verify to fail on violations")
	}
	requireContains(t, stdout, "Battery-48_Build-2")
	requireContains(t, stdout, "temperature_range")
	requireContains(t, stdout, "Checked 2 builds: 1 passed, 1 failed")
}

func TestUploadDryRun(t *testing.T) {
	configPath, root := writeTestConfig(t)
	stdout, _, err := runCLI(t, []string{"upload", designWorkbook(t), "--dry-run"}, configPath)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	requireContains(t, stdout, "Found 2 blocks")
	requireContains(t, stdout, "DesignData Battery-48_Build-1")
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Fatalf("dry run should not create the archive, stat err = %v", err)
	}
}

func TestArchiveWorkflow(t *testing.T) {
	configPath, root := writeTestConfig(t)
	input := designWorkbook(t)

	stdout, _, err := runCLI(t, []string{"upload", input}, configPath)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	requireContains(t, stdout, "Found 2 blocks")
	requireContains(t, stdout, "Uploaded 2 new files.")

	stdout, _, err = runCLI(t, []string{"upload", input}, configPath)
	if err != nil {
		t.Fatalf("second upload failed: %v", err)
	}
	requireContains(t, stdout, "Uploaded 0 new files.")
	requireContains(t, stdout, "Skipped 2 duplicates.")

	stdout, _, err = runCLI(t, []string{"ls"}, configPath)
	if err != nil {
		t.Fatalf("ls failed: %v", err)
	}
	if strings.TrimSpace(stdout) != "48" {
		t.Fatalf("ls = %q, want 48", stdout)
	}

	stdout, _, err = runCLI(t, []string{"ls", "48", "-t", "design_data"}, configPath)
	if err != nil {
		t.Fatalf("ls 48 failed: %v", err)
	}
	requireContains(t, stdout, "Battery-48_Build-1.json")
	requireContains(t, stdout, "Battery-48_Build-2.json")

	st, err := fsstore.Open(root)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	paths, err := st.List(context.Background(), "48/design_data/")
	if err != nil || len(paths) != 2 {
		t.Fatalf("archive paths = %v, %v", paths, err)
	}
	live := paths[0]

	edited := filepath.Join(t.TempDir(), "edited.json")
	if _, _, err := runCLI(t, []string{"get", live, "-o", edited}, configPath); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	data, err := os.ReadFile(edited)
	if err != nil {
		t.Fatalf("read edited: %v", err)
	}
	data = bytes.Replace(data, []byte(`"Temperature of Discharge (°C)": 25`), []byte(`"Temperature of Discharge (°C)": 30`), 1)
	if err := os.WriteFile(edited, data, 0o644); err != nil {
		t.Fatalf("write edited: %v", err)
	}

	stdout, _, err = runCLI(t, []string{"submit", live, edited}, configPath)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	requireContains(t, stdout, "Submitted for approval: 48/design_data/_pending_approvals/")
	pending := strings.TrimSpace(strings.TrimPrefix(stdout, "Submitted for approval: "))

	stdout, _, err = runCLI(t, []string{"pending", "48"}, configPath)
	if err != nil {
		t.Fatalf("pending failed: %v", err)
	}
	requireContains(t, stdout, "Found 1 pending changes.")

	stdout, _, err = runCLI(t, []string{"review", "/" + pending}, configPath)
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	requireContains(t, stdout, "Current ("+live+")")
	requireContains(t, stdout, "Proposed ("+pending+")")

	stdout, stderr, err := runCLI(t, []string{"approve", "./" + pending}, configPath)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	requireContains(t, stdout, "Approved: "+live+" updated")
	requireContains(t, stderr, `"msg":"approved change request"`)
	requireContains(t, stderr, `"request_id":`)

	stdout, _, err = runCLI(t, []string{"get", live}, configPath)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	requireContains(t, stdout, `"Temperature of Discharge (°C)": 30`)

	stdout, _, err = runCLI(t, []string{"pending", "48"}, configPath)
	if err != nil {
		t.Fatalf("pending failed: %v", err)
	}
	requireContains(t, stdout, "No pending approvals for this battery.")

	stdout, _, err = runCLI(t, []string{"reject", pending}, configPath)
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	requireContains(t, stdout, "Request rejected")

	if _, _, err := runCLI(t, []string{"approve", live}, configPath); err == nil {
		t.Fatal("expected approve of a live path to fail")
	}
}

func TestGetTable(t *testing.T) {
	configPath, root := writeTestConfig(t)
	st, err := fsstore.Open(root)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	p := "48/temp/TempData_20240101_000000_Battery-48_Build-1.json"
	if err := st.Put(context.Background(), p, []byte(`[{"Time":0,"T1":20.5},{"Time":5,"T1":30}]`), "application/json"); err != nil {
		t.Fatalf("seed archive: %v", err)
	}

	stdout, _, err := runCLI(t, []string{"get", p, "--table"}, configPath)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	requireContains(t, stdout, "TIME")
	requireContains(t, stdout, "20.5")
}

func TestConfigInitAndValidate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "nested", "config.toml")

	stdout, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	requireContains(t, stdout, "Wrote sample configuration to "+target)

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config exists")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite failed: %v", err)
	}

	stdout, _, err = runCLI(t, []string{"config", "validate"}, target)
	if err != nil {
		t.Fatalf("config validate failed: %v", err)
	}
	requireContains(t, stdout, "Configuration valid: "+target)
	requireContains(t, stdout, "Store backend: fs")
}
