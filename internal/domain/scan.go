package domain

import "context"

// ScanResult aggregates token counts over scanned files. Results are combined by
// element-wise addition, so they can be merged in any order.
type ScanResult struct {
	Tokens       int `json:"tokens"`
	FilesCounted int `json:"files_counted"`
	FilesSkipped int `json:"files_skipped"`
}

// Add returns the element-wise sum of r and other.
func (r ScanResult) Add(other ScanResult) ScanResult {
	return ScanResult{
		Tokens:       r.Tokens + other.Tokens,
		FilesCounted: r.FilesCounted + other.FilesCounted,
		FilesSkipped: r.FilesSkipped + other.FilesSkipped,
	}
}

// SkippedUnit is the result for a target that could not be measured.
func SkippedUnit() ScanResult {
	return ScanResult{FilesSkipped: 1}
}

// TokenCounter converts text to a token count consistent with a reference model tokenizer.
type TokenCounter interface {
	CountTokens(text string) int
}

// Scanner measures the exact token volume of files and directory trees.
// Scan never fails: unmeasurable targets are folded into FilesSkipped.
type Scanner interface {
	Scan(ctx context.Context, paths ...string) ScanResult
}
