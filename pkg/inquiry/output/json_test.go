package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iipl/crmdash/pkg/inquiry/models"
)

func sampleResult() *models.ExtractionResult {
	r := models.NewRecord()
	r.Set("Name", "Alice & Co <Pune>")
	r.Set("Amount", int64(10))
	r.Set("Date", "2024-01-05")
	r.Set("Notes", nil)

	return &models.ExtractionResult{
		Inquiries: []models.Record{r},
		Metadata: models.Metadata{
			TotalRecords: 1,
			GeneratedAt:  "2025-06-30 09:08:07",
			SourceFile:   "crm.xlsx",
		},
		Columns: []string{"Name", "Amount", "Date", "Notes"},
	}
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleResult(), false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	expected := `{"inquiries":[{"Name":"Alice & Co <Pune>","Amount":10,"Date":"2024-01-05","Notes":null}],` +
		`"metadata":{"total_records":1,"generated_at":"2025-06-30 09:08:07","source_file":"crm.xlsx"}}` + "\n"
	if string(data) != expected {
		t.Errorf("ToJSON =\n%s\nexpected\n%s", data, expected)
	}
}

func TestToJSON_Pretty(t *testing.T) {
	data, err := ToJSON(sampleResult(), true)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	for _, want := range []string{
		"{\n  \"inquiries\": [\n    {\n      \"Name\": \"Alice & Co <Pune>\",",
		"\n  \"metadata\": {\n    \"total_records\": 1,",
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("pretty output missing %q:\n%s", want, data)
		}
	}
	if strings.Contains(string(data), "Columns") {
		t.Error("column list must not be serialized")
	}
}

func TestToJSON_NoInquiries(t *testing.T) {
	result := &models.ExtractionResult{Metadata: models.Metadata{SourceFile: "crm.xlsx"}}

	data, err := ToJSON(result, false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if !strings.HasPrefix(string(data), `{"inquiries":[],`) {
		t.Errorf("ToJSON = %s, expected empty inquiries array", data)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "iipl_data.json")

	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatalf("Failed to seed output: %v", err)
	}
	if err := WriteFile(path, sampleResult(), true); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if _, ok := doc["inquiries"]; !ok {
		t.Error("output has no inquiries")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestWriteFile_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.json")
	if err := WriteFile(path, sampleResult(), false); err == nil {
		t.Error("expected error for missing directory")
	}
}
