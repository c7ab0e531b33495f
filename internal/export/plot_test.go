package export_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kcatlin/permsim/internal/export"
	"github.com/kcatlin/permsim/internal/models"
)

func TestWritePlots(t *testing.T) {
	dir := t.TempDir()
	results := map[string]*models.Aggregate{"loop": twoTrialAggregate()}

	if err := export.WritePlots(dir, results); err != nil {
		t.Fatalf("WritePlots failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "loop.png"))
	if err != nil {
		t.Fatalf("plot file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("plot file is empty")
	}
}
