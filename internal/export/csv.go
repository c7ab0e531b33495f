// Package export renders aggregate results into tabular and graphical
// sinks: CSV files, a SQLite database, and distribution plots. The core
// only hands over plain tables; everything format-specific lives here.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kcatlin/permsim/internal/models"
)

// WriteCSV writes one success table and one table per metric for every
// strategy into dir. Rows are searchers, columns are trials.
func WriteCSV(dir string, results map[string]*models.Aggregate) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating csv directory: %w", err)
	}

	for name, agg := range results {
		path := filepath.Join(dir, name+"_success.csv")
		if err := writeBoolTable(path, agg); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		for _, metric := range agg.MetricNames() {
			path := filepath.Join(dir, name+"_"+metric+".csv")
			if err := writeFloatTable(path, agg.MetricRows(metric), agg.Trials()); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
		}
	}
	return nil
}

func header(trials int) []string {
	row := make([]string, 0, trials+1)
	row = append(row, "searcher")
	for t := 0; t < trials; t++ {
		row = append(row, "trial_"+strconv.Itoa(t))
	}
	return row
}

func writeBoolTable(path string, agg *models.Aggregate) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header(agg.Trials())); err != nil {
		return err
	}

	for searcher, row := range agg.SuccessRows() {
		record := make([]string, 0, len(row)+1)
		record = append(record, strconv.Itoa(searcher))
		for _, ok := range row {
			record = append(record, strconv.FormatBool(ok))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func writeFloatTable(path string, rows [][]float64, trials int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header(trials)); err != nil {
		return err
	}

	for searcher, row := range rows {
		record := make([]string, 0, len(row)+1)
		record = append(record, strconv.Itoa(searcher))
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
