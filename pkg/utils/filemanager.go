// =============================================================================
// BigFix Export Cleanup - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the cleanup tool,
// including:
//   - File discovery and scanning
//   - Extension renaming
//   - Error report generation
//   - Directory management
//
// DIRECTORY STRATEGY:
//   - Raw exports are dropped into the raw directory by the BigFix/ILMT
//     report schedules and are never modified there (except the CMDB file,
//     which is de-quoted in place before the pipeline copies it)
//   - The pipeline writes cleaned files into the processed directory
//   - Failed files stay where they are; error reports are written to the
//     processed directory only on request
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the cleanup tool.
type FileManager struct {
	// RawDir is the directory where raw export files are dropped.
	RawDir string

	// ProcessedDir is the working directory for cleaned files.
	ProcessedDir string
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(rawDir, processedDir string) *FileManager {
	return &FileManager{
		RawDir:       rawDir,
		ProcessedDir: processedDir,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureProcessedDir creates the processed directory if it doesn't exist.
// The raw directory is deliberately not created: if it is missing, the
// export schedules have not run and the pipeline must fail loudly rather
// than process an empty folder.
func (fm *FileManager) EnsureProcessedDir() error {
	if err := os.MkdirAll(fm.ProcessedDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.ProcessedDir, err)
	}
	return nil
}

// RequireDir fails with a descriptive error when dir is missing or not a
// directory.
func RequireDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory not found: %s", dir)
		}
		return fmt.Errorf("failed to access %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}
	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverFiles returns the files in dir with the given extension (e.g.
// ".txt"), sorted by name. Subdirectories are not descended into. The
// extension match is case-insensitive, matching how the export tools name
// their files inconsistently.
func DiscoverFiles(dir, extension string) ([]string, error) {
	if err := RequireDir(dir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if extension == "" || strings.EqualFold(filepath.Ext(entry.Name()), extension) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

// =============================================================================
// RENAMING
// =============================================================================

// RenameExtension renames path to the same base name with newExt (e.g.
// ".csv"). An existing file under the target name is removed first so that
// reruns always succeed with fresh content. Returns the new path.
func RenameExtension(path, newExt string) (string, error) {
	target := strings.TrimSuffix(path, filepath.Ext(path)) + newExt

	if FileExists(target) {
		if err := os.Remove(target); err != nil {
			return "", fmt.Errorf("failed to remove existing %s: %w", target, err)
		}
	}
	if err := MoveFile(path, target); err != nil {
		return "", fmt.Errorf("failed to rename %s: %w", path, err)
	}
	return target, nil
}

// MoveFile moves a file, falling back to copy-and-delete when a plain
// rename fails (e.g. across filesystems, which happens when the processed
// directory is on a network share).
func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		if err := copyFile(src, dst); err != nil {
			return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
		}
		if err := os.Remove(src); err != nil {
			return fmt.Errorf("failed to remove original %s: %w", src, err)
		}
	}
	return nil
}

// =============================================================================
// ERROR REPORT GENERATION
// =============================================================================

// RunError records one failure from a batch run.
type RunError struct {
	Timestamp time.Time
	Step      string
	FileName  string
	Message   string
}

// WriteErrorReport writes the collected failures to a uniquely named report
// in outputDir and returns its path. The UUID suffix keeps reports from
// successive runs within the same second from clobbering each other.
func WriteErrorReport(errors []RunError, outputDir string) (string, error) {
	if len(errors) == 0 {
		return "", nil
	}

	name := fmt.Sprintf("error_report_%s_%s.txt",
		time.Now().Format("20060102_150405"),
		uuid.New().String()[:8])
	reportPath := filepath.Join(outputDir, name)

	file, err := os.Create(reportPath)
	if err != nil {
		return "", fmt.Errorf("failed to create error report: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "BigFix Export Cleanup - Error Report\n"+
		"Generated: %s\n"+
		"Total Errors: %d\n"+
		"================================================================================\n\n",
		time.Now().Format("2006-01-02 15:04:05"),
		len(errors))

	for i, e := range errors {
		fmt.Fprintf(writer, "Error #%d\n"+
			"  Timestamp: %s\n"+
			"  Step:      %s\n",
			i+1,
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.Step)
		if e.FileName != "" {
			fmt.Fprintf(writer, "  File:      %s\n", e.FileName)
		}
		fmt.Fprintf(writer, "  Message:   %s\n\n", e.Message)
	}

	fmt.Fprintf(writer, "================================================================================\n"+
		"End of Error Report\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush error report: %w", err)
	}
	return reportPath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
