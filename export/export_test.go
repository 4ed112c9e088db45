package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"retail-analytics/core/report"
)

func sampleTable() report.Table {
	return report.Table{
		Title:   "Revenue by Sales Channel",
		Columns: []string{"sales_channel", "revenue", "revenue_share_pct"},
		Rows: [][]any{
			{"Online", decimal.RequireFromString("150.00"), decimal.RequireFromString("60.00")},
			{"In-Store", decimal.RequireFromString("100.00"), decimal.RequireFromString("40.00")},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	if err := WriteCSV(dir, []report.Table{sampleTable()}); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "revenue_by_sales_channel.csv"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 lines, got %d", len(lines))
	}
	if lines[0] != "sales_channel,revenue,revenue_share_pct" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if lines[1] != "Online,150.00,60.00" {
		t.Errorf("decimals must keep their scale: %s", lines[1])
	}
}

func TestWriteCSVNilCell(t *testing.T) {
	dir := t.TempDir()
	table := report.Table{
		Title:   "Monthly Revenue Trend",
		Columns: []string{"month", "revenue_growth_pct"},
		Rows:    [][]any{{"2024-01", nil}},
	}
	if err := WriteCSV(dir, []report.Table{table}); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "monthly_revenue_trend.csv"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "2024-01,\n") {
		t.Errorf("nil cell must be empty, got:\n%s", data)
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := WriteJSON(path, map[string]string{"version": "1.0.0"}); err != nil {
		t.Fatalf("write json: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), `"version": "1.0.0"`) {
		t.Errorf("unexpected content: %s", data)
	}
}

func TestWriteExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.xlsx")
	if err := WriteExcel(path, []report.Table{sampleTable()}); err != nil {
		t.Fatalf("write excel: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("workbook is empty")
	}
}

func TestRenderTable(t *testing.T) {
	var buf strings.Builder
	RenderTable(&buf, sampleTable())
	out := buf.String()
	for _, want := range []string{"SALES_CHANNEL", "Online", "150.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered table missing %q:\n%s", want, out)
		}
	}
}

func TestSlug(t *testing.T) {
	if got := slug("Top 10: Customers!"); got != "top_10_customers" {
		t.Errorf("want top_10_customers, got %q", got)
	}
}
