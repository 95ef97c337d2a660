// Package schema defines the result types shared between the fix engine and
// its consumers (CLI output, MCP tools, machine-readable summaries).
package schema

import "fmt"

// FileStatus is the terminal state of one processed file.
type FileStatus string

const (
	StatusWritten     FileStatus = "written"     // fixes applied and persisted
	StatusUnchanged   FileStatus = "unchanged"   // processed, nothing to apply
	StatusPreviewed   FileStatus = "previewed"   // dry run: fixes computed, nothing persisted
	StatusSkipped     FileStatus = "skipped"     // not processed (size, encoding, ...)
	StatusFailed      FileStatus = "failed"      // processing error
	StatusInterrupted FileStatus = "interrupted" // run cancelled before completion
)

// AppliedFix records one fix that landed in a file.
type AppliedFix struct {
	CheckID        string  `json:"checkId"`
	Line           int     `json:"line"`
	Column         int     `json:"column,omitempty"`
	Operation      string  `json:"operation"` // "replace" or "insert_before"
	Confidence     float64 `json:"confidence"`
	RequiresReview bool    `json:"requiresReview,omitempty"`
	CommentFlag    bool    `json:"commentFlag,omitempty"`
}

// SkippedFix records one fix that could not be applied, with the reason.
type SkippedFix struct {
	CheckID string `json:"checkId"`
	Line    int    `json:"line"`
	Column  int    `json:"column,omitempty"`
	Reason  string `json:"reason"` // "conflict", "declined", "line out of range"
}

// FileResult is the per-file entry in a ProcessingResult.
type FileResult struct {
	Path    string       `json:"path"`
	Status  FileStatus   `json:"status"`
	Applied []AppliedFix `json:"applied,omitempty"`
	Skipped []SkippedFix `json:"skipped,omitempty"`
	Reason  string       `json:"reason,omitempty"` // skip/failure detail
	Backup  string       `json:"backup,omitempty"` // backup file path, if written
	Diff    string       `json:"diff,omitempty"`   // unified diff (dry-run only)
}

// ProcessingResult is the aggregate outcome of one fix run.
// It is built once by the file processor and read-only afterwards.
type ProcessingResult struct {
	Files []FileResult `json:"files"`

	FilesProcessed   int `json:"filesProcessed"`
	FixesApplied     int `json:"fixesApplied"`
	FixesFlagged     int `json:"fixesFlagged"` // applied but requiring review
	FixesSkipped     int `json:"fixesSkipped"`
	FilesFailed      int `json:"filesFailed"`
	FilesSkipped     int `json:"filesSkipped"`
	FilesInterrupted int `json:"filesInterrupted"`
}

// Summary returns a one-line machine-friendly summary string.
// Format: "N files: A applied, F flagged, S skipped, E failed"
func (r *ProcessingResult) Summary() string {
	return fmt.Sprintf("%d files: %d applied, %d flagged, %d skipped, %d failed",
		r.FilesProcessed, r.FixesApplied, r.FixesFlagged, r.FixesSkipped, r.FilesFailed)
}

// HasFailures reports whether any file failed or was interrupted.
func (r *ProcessingResult) HasFailures() bool {
	return r.FilesFailed > 0 || r.FilesInterrupted > 0
}
