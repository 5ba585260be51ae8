package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"

	"github.com/partsight/backend/internal/domain"
)

// Fixed worksheet layout. The header occupies headerRow, data starts on the
// next row. The layout is a contract with the uploaded document, not
// auto-detected.
const (
	colKey      = "A"
	colAltID    = "B"
	colTitle    = "C"
	colWeight   = "D"
	colLength   = "E"
	colWidth    = "F"
	colHeight   = "G"
	colMaterial = "H"
	colNote     = "I"

	headerRow    = 1
	firstDataRow = headerRow + 1
)

// Fill colors for the comparison row, one per verdict
const (
	fillMatch      = "C6EFCE" // green
	fillMismatch   = "FFC7CE" // red
	fillUnresolved = "FFEB9C" // yellow
)

// ReconcileConfig holds configuration for the reconcile service
type ReconcileConfig struct {
	Concurrency        int
	WeightTolerancePct float64
	EnableDebugLogging bool
}

// ReconcileService reconciles an uploaded parts list against the web catalog
// and materializes retrieved data plus verdicts back into the workbook.
type ReconcileService struct {
	fetcher     domain.ProductFetcher
	comparator  *Comparator
	concurrency int
	debug       bool
}

// NewReconcileService creates a reconcile service with dependencies
func NewReconcileService(fetcher domain.ProductFetcher, config ReconcileConfig) *ReconcileService {
	concurrency := config.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &ReconcileService{
		fetcher:     fetcher,
		comparator:  NewComparator(config.WeightTolerancePct),
		concurrency: concurrency,
		debug:       config.EnableDebugLogging,
	}
}

// ReconcileWorkbook augments every worksheet of the workbook in place: after
// each product row it inserts a web-data row with the retrieved record and a
// comparison row with per-attribute verdicts. Original rows are never
// overwritten. Re-running on an already-augmented workbook inserts rows
// again; synthetic rows carry no marker.
func (s *ReconcileService) ReconcileWorkbook(ctx context.Context, f *excelize.File) error {
	keys := s.extractKeys(f)
	outcomes := FetchAll(ctx, keys, s.fetcher, s.concurrency)

	styles, err := newVerdictStyles(f)
	if err != nil {
		return fmt.Errorf("creating verdict styles: %w", err)
	}

	for _, sheet := range f.GetSheetList() {
		if err := s.reconcileSheet(f, sheet, outcomes, styles); err != nil {
			return fmt.Errorf("sheet %q: %w", sheet, err)
		}
	}
	return nil
}

// extractKeys collects every eligible product key from the key column of all
// worksheets. Non-matching cell values are skipped, not errors.
func (s *ReconcileService) extractKeys(f *excelize.File) []domain.ProductKey {
	var keys []domain.ProductKey
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			log.Printf("[RECONCILE] reading sheet %q: %v", sheet, err)
			continue
		}
		for i := firstDataRow - 1; i < len(rows); i++ {
			key, ok := domain.ParseProductKey(cellAt(rows[i], colKey))
			if !ok {
				continue
			}
			keys = append(keys, key)
		}
	}
	return keys
}

// reconcileSheet runs the per-worksheet state machine. The candidate set is
// frozen before the first insertion and the walk is in descending row order:
// inserting rows shifts every later index down, so handling high indices
// first keeps the indices of pending candidates valid.
func (s *ReconcileService) reconcileSheet(
	f *excelize.File,
	sheet string,
	outcomes map[domain.ProductKey]domain.RetrievalOutcome,
	styles verdictStyles,
) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrWorkbookUnreadable, err)
	}

	candidates := candidateRows(rows)
	if s.debug {
		log.Printf("[RECONCILE] sheet %q: %d candidate rows", sheet, len(candidates))
	}

	for i := len(candidates) - 1; i >= 0; i-- {
		row := candidates[i]

		record := s.resolveRecord(f, sheet, row, outcomes)

		if err := f.InsertRows(sheet, row+1, 2); err != nil {
			return fmt.Errorf("inserting rows after %d: %w", row, err)
		}
		if err := s.writeWebRow(f, sheet, row+1, record); err != nil {
			return err
		}
		if err := s.writeComparisonRow(f, sheet, row, record, styles); err != nil {
			return err
		}
	}
	return nil
}

// candidateRows returns the 1-based indices of product rows: data rows whose
// marker columns (key, alternate-id or title) carry any non-blank value.
func candidateRows(rows [][]string) []int {
	var candidates []int
	for i := firstDataRow - 1; i < len(rows); i++ {
		if cellAt(rows[i], colKey) != "" ||
			cellAt(rows[i], colAltID) != "" ||
			cellAt(rows[i], colTitle) != "" {
			candidates = append(candidates, i+1)
		}
	}
	return candidates
}

// resolveRecord looks up the retrieval outcome for a candidate row. An
// ineligible key or a failed fetch yields an empty placeholder record so the
// comparison degrades to UNRESOLVED instead of aborting the sheet.
func (s *ReconcileService) resolveRecord(
	f *excelize.File,
	sheet string,
	row int,
	outcomes map[domain.ProductKey]domain.RetrievalOutcome,
) *domain.ProductRecord {
	raw, _ := f.GetCellValue(sheet, cellName(colKey, row))
	key, ok := domain.ParseProductKey(raw)
	if !ok {
		return &domain.ProductRecord{}
	}

	outcome, found := outcomes[key]
	if !found || outcome.Err != nil || outcome.Record == nil {
		if s.debug && found && outcome.Err != nil {
			log.Printf("[RECONCILE] %s row %d: %v", key, row, outcome.Err)
		}
		return &domain.ProductRecord{Key: key}
	}
	return outcome.Record
}

// writeWebRow fills the inserted web-data row with the record's fields in the
// source column layout. The dimension text is split into the three discrete
// columns through the normalizer; the note column carries the material
// classification code when one is recognized.
func (s *ReconcileService) writeWebRow(f *excelize.File, sheet string, row int, record *domain.ProductRecord) error {
	cells := map[string]string{
		colKey:      string(record.Key),
		colAltID:    record.AlternateID,
		colTitle:    record.Title,
		colWeight:   record.WeightText,
		colMaterial: record.MaterialText,
		colNote:     ClassifyMaterial(record.MaterialClass),
	}

	triple := ParseDimensionTriple(record.DimensionText)
	for col, component := range map[string]*int{
		colLength: triple.L,
		colWidth:  triple.B,
		colHeight: triple.H,
	} {
		if component != nil {
			cells[col] = fmt.Sprintf("%d", *component)
		}
	}

	for col, value := range cells {
		if value == "" {
			continue
		}
		if err := f.SetCellValue(sheet, cellName(col, row), value); err != nil {
			return fmt.Errorf("writing web row %d: %w", row, err)
		}
	}

	if record.URL != "" {
		if err := f.SetCellHyperLink(sheet, cellName(colKey, row), record.URL, "External"); err != nil {
			return fmt.Errorf("linking web row %d: %w", row, err)
		}
	}
	return nil
}

// writeComparisonRow fills the second inserted row with one verdict per
// compared attribute. sourceRow is the original candidate row, still at its
// pre-insertion index because the walk is descending.
func (s *ReconcileService) writeComparisonRow(
	f *excelize.File,
	sheet string,
	sourceRow int,
	record *domain.ProductRecord,
	styles verdictStyles,
) error {
	sourceCell := func(col string) string {
		value, _ := f.GetCellValue(sheet, cellName(col, sourceRow))
		return value
	}

	comparisons := map[string]domain.Comparison{
		colAltID:  s.comparator.CompareIdentifier(sourceCell(colAltID), record.AlternateID),
		colTitle:  s.comparator.CompareText(sourceCell(colTitle), record.Title),
		colWeight: s.comparator.CompareWeight(sourceCell(colWeight), record.WeightText),
		colLength: s.comparator.CompareDimensions(
			sourceCell(colLength), sourceCell(colWidth), sourceCell(colHeight), record.DimensionText,
		),
		colMaterial: s.comparator.CompareText(sourceCell(colMaterial), record.MaterialText),
	}

	row := sourceRow + 2
	for col, comparison := range comparisons {
		cell := cellName(col, row)
		if err := f.SetCellValue(sheet, cell, comparison.Comment); err != nil {
			return fmt.Errorf("writing comparison row %d: %w", row, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, styles.idFor(comparison.Verdict)); err != nil {
			return fmt.Errorf("styling comparison row %d: %w", row, err)
		}
	}
	return nil
}

// verdictStyles holds the three fill style IDs, created once per workbook
type verdictStyles struct {
	match      int
	mismatch   int
	unresolved int
}

func newVerdictStyles(f *excelize.File) (verdictStyles, error) {
	var styles verdictStyles
	for _, entry := range []struct {
		color  string
		target *int
	}{
		{fillMatch, &styles.match},
		{fillMismatch, &styles.mismatch},
		{fillUnresolved, &styles.unresolved},
	} {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{entry.color}},
		})
		if err != nil {
			return styles, err
		}
		*entry.target = id
	}
	return styles, nil
}

func (v verdictStyles) idFor(verdict domain.Verdict) int {
	switch verdict {
	case domain.VerdictMatch:
		return v.match
	case domain.VerdictMismatch:
		return v.mismatch
	default:
		return v.unresolved
	}
}

// cellName joins a column letter and a 1-based row index into a cell ref
func cellName(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// cellAt reads a column from a GetRows slice, tolerating short rows
func cellAt(row []string, col string) string {
	index := int(col[0] - 'A')
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}
