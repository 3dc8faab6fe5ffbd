// Package importer implements the bulk spreadsheet import pipeline: read,
// map columns, coerce, validate, then persist validated rows in fixed-size
// transactional chunks. A chunk commits or rolls back as a unit; committed
// chunks are never undone by later failures.
package importer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DefaultChunkSize is the number of validated rows persisted per transaction.
const DefaultChunkSize = 100

// Options controls one import run. Zero values fall back to the service
// defaults when the caller passes nil.
type Options struct {
	AllowPartialMapping    bool `json:"allow_partial_mapping"`
	SkipInvalidRows        bool `json:"skip_invalid_rows"`
	ValidateDates          bool `json:"validate_dates"`
	TrimWhitespace         bool `json:"trim_whitespace"`
	ForceTypeCompatibility bool `json:"force_type_compatibility"`
	UpdateExisting         bool `json:"update_existing"`
	ChunkSize              int  `json:"chunk_size"`
}

// DefaultOptions returns the service's baseline import options.
func DefaultOptions() Options {
	return Options{
		ValidateDates:  true,
		TrimWhitespace: true,
		UpdateExisting: true,
		ChunkSize:      DefaultChunkSize,
	}
}

// Result is the structured outcome returned for every import run. The
// pipeline never surfaces an error to the HTTP layer any other way.
type Result struct {
	Success      bool       `json:"success"`
	Message      string     `json:"message"`
	TotalRows    int        `json:"total_rows"`
	ImportedRows int        `json:"imported_rows"`
	SkippedRows  int        `json:"skipped_rows"`
	FailedRows   int        `json:"failed_rows"`
	Errors       []RowIssue `json:"errors,omitempty"`
	Warnings     []RowIssue `json:"warnings,omitempty"`
}

// RowError marks a business-rule violation in a processor. Row errors are
// handled per row; any other error escaping ProcessRow rolls back the chunk.
type RowError struct {
	msg string
}

func (e *RowError) Error() string { return e.msg }

// RowErrorf builds a per-row processing error.
func RowErrorf(format string, args ...any) *RowError {
	return &RowError{msg: fmt.Sprintf(format, args...)}
}

// Processor supplies the entity-specific pieces of an import: target rules,
// required fields, cross-field validation, and the per-row upsert.
type Processor interface {
	Name() string
	RequiredFields() []string
	Rules() RuleSet
	ValidateRow(row Row) (Row, error)
	ProcessRow(tx *gorm.DB, row Row, opts Options, actorID *uuid.UUID) error
}

// Service drives imports against one database.
type Service struct {
	db       *gorm.DB
	root     string
	defaults Options
}

// NewService returns an import service resolving relative file paths under
// storageRoot.
func NewService(db *gorm.DB, storageRoot string) *Service {
	return &Service{db: db, root: storageRoot, defaults: DefaultOptions()}
}

// ImportFromFile runs the full pipeline for one uploaded file and returns a
// structured result. columnMappings maps target field names to source column
// names; a mapping value may list alternative columns separated by commas,
// in which case the first non-empty cell wins. An empty mapping value means
// the field is not imported.
func (s *Service) ImportFromFile(ctx context.Context, proc Processor, filePath string, columnMappings map[string]string, opts *Options, actorID *uuid.UUID) Result {
	opt := s.defaults
	if opts != nil {
		opt = *opts
	}
	if opt.ChunkSize <= 0 {
		opt.ChunkSize = DefaultChunkSize
	}

	path := filePath
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}

	res := Result{}
	rows, err := ReadFile(path)
	if err != nil {
		res.Message = err.Error()
		return res
	}
	res.TotalRows = len(rows)

	if !opt.AllowPartialMapping {
		for _, rf := range proc.RequiredFields() {
			if strings.TrimSpace(columnMappings[rf]) == "" {
				res.Message = fmt.Sprintf("Missing required column mapping for field: %s", rf)
				return res
			}
		}
	}

	rules := proc.Rules()
	mapped := make([]Row, 0, len(rows))
	for i, raw := range rows {
		row := make(Row, len(columnMappings))
		for field, source := range columnMappings {
			if strings.TrimSpace(source) == "" {
				continue
			}
			var value any
			for _, col := range strings.Split(source, ",") {
				if cell, ok := raw[strings.TrimSpace(col)]; ok && !isEmptyValue(cell) {
					value = cell
					break
				}
			}
			if opt.ForceTypeCompatibility {
				coerced, warn := Coerce(field, value, rules[field].Type)
				if warn != "" {
					res.Warnings = append(res.Warnings, RowIssue{Row: i + 1, Field: field, Message: warn})
				}
				value = coerced
			}
			if opt.TrimWhitespace {
				if sv, ok := value.(string); ok {
					value = strings.TrimSpace(sv)
				}
			}
			row[field] = value
		}
		mapped = append(mapped, row)
	}

	valid, errs, warns := validateRows(mapped, rules, opt, proc.ValidateRow)
	res.Errors = append(res.Errors, errs...)
	res.Warnings = append(res.Warnings, warns...)

	if len(errs) > 0 && !opt.SkipInvalidRows {
		res.Message = "Validation failed"
		return res
	}
	res.SkippedRows += len(mapped) - len(valid)

	db := s.db
	if ctx != nil {
		db = db.WithContext(ctx)
	}

	for start := 0; start < len(valid); start += opt.ChunkSize {
		end := start + opt.ChunkSize
		if end > len(valid) {
			end = len(valid)
		}
		chunk := valid[start:end]

		var imported, skipped, failed int
		var chunkErrs, chunkWarns []RowIssue

		txErr := db.Transaction(func(tx *gorm.DB) error {
			for _, item := range chunk {
				if emptyRow(item.data) {
					skipped++
					continue
				}
				if err := proc.ProcessRow(tx, item.data, opt, actorID); err != nil {
					var rowErr *RowError
					if errors.As(err, &rowErr) {
						if opt.SkipInvalidRows {
							skipped++
							chunkWarns = append(chunkWarns, RowIssue{Row: item.index, Message: rowErr.Error()})
						} else {
							failed++
							chunkErrs = append(chunkErrs, RowIssue{Row: item.index, Message: rowErr.Error()})
						}
						continue
					}
					return err
				}
				imported++
			}
			return nil
		})

		if txErr != nil {
			// The whole chunk rolled back; per-row tallies inside it no
			// longer reflect persisted state.
			logrus.WithFields(logrus.Fields{"processor": proc.Name(), "chunk_start_row": chunk[0].index}).
				Error(fmt.Sprintf("import chunk failed: %v", txErr))
			res.FailedRows += len(chunk)
			res.Errors = append(res.Errors, RowIssue{
				Row:     chunk[0].index,
				Message: fmt.Sprintf("chunk starting at row %d failed and was rolled back: %v", chunk[0].index, txErr),
			})
			continue
		}

		res.ImportedRows += imported
		res.SkippedRows += skipped
		res.FailedRows += failed
		res.Errors = append(res.Errors, chunkErrs...)
		res.Warnings = append(res.Warnings, chunkWarns...)
	}

	res.Success = true
	res.Message = fmt.Sprintf("Import completed. Total: %d, Imported: %d, Skipped: %d, Failed: %d",
		res.TotalRows, res.ImportedRows, res.SkippedRows, res.FailedRows)
	return res
}

// emptyRow reports whether every mapped value is null or blank. Such rows
// are skipped without touching storage.
func emptyRow(row Row) bool {
	for _, v := range row {
		if !isEmptyValue(v) {
			return false
		}
	}
	return true
}
