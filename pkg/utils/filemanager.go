// =============================================================================
// CSV to JSON Converter - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the converter:
//   - Archival of the previous target before it is overwritten
//   - Directory management
//   - Archive file naming
//
// ARCHIVAL STRATEGY:
//   - The target is copied, not moved; the converter overwrites it afterwards
//   - A missing target is not an error (first run)
//   - Archive names are unique, so repeated runs never clobber each other
//
// CUSTOMIZATION:
//   - Enable UseTimestampSubdirs (archive_subdirs) for date-based archive
//     subdirectories
//   - Change ArchiveNameFormat to alter archive file names
//
// =============================================================================

package utils

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultArchiveNameFormat is the file name pattern used for archived targets.
const DefaultArchiveNameFormat = "{original}_{timestamp}_{uuid}{ext}"

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the converter.
type FileManager struct {
	// ArchiveDir is the directory that receives archived targets.
	ArchiveDir string

	// ArchiveNameFormat is the name pattern for archived files.
	// See generateArchiveFileName for placeholders.
	ArchiveNameFormat string

	// UseTimestampSubdirs creates date-based subdirectories in the archive.
	// Example: archive/2024/01/15/resources_20240115_143022_<uuid>.json
	UseTimestampSubdirs bool

	// now is the clock used for timestamps. Replaced in tests.
	now func() time.Time
}

// NewFileManager creates a new FileManager archiving into archiveDir.
func NewFileManager(archiveDir string) *FileManager {
	return &FileManager{
		ArchiveDir:        archiveDir,
		ArchiveNameFormat: DefaultArchiveNameFormat,
		now:               time.Now,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates the archive directory if it doesn't exist.
//
// RETURNS:
//   - An error if the directory cannot be created.
func (fm *FileManager) EnsureDirectories() error {
	if fm.ArchiveDir == "" {
		return nil
	}
	if err := os.MkdirAll(fm.ArchiveDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.ArchiveDir, err)
	}
	return nil
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveTarget copies an existing target file into the archive directory.
//
// PARAMETERS:
//   - targetPath: The path to the file about to be overwritten.
//
// RETURNS:
//   - The path to the archived copy, or "" if there was nothing to archive
//     (no archive directory configured, or no target yet).
//   - An error if archival fails.
func (fm *FileManager) ArchiveTarget(targetPath string) (string, error) {
	if fm.ArchiveDir == "" {
		return "", nil
	}

	info, err := os.Stat(targetPath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to inspect %s: %w", targetPath, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("target %s is a directory", targetPath)
	}

	// Determine the archive path.
	archivePath := fm.getArchivePath(targetPath)

	// Ensure the archive directory exists.
	if err := os.MkdirAll(filepath.Dir(archivePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := copyFile(targetPath, archivePath); err != nil {
		return "", fmt.Errorf("failed to copy file to archive: %w", err)
	}

	return archivePath, nil
}

// getArchivePath constructs the archive path for a file.
func (fm *FileManager) getArchivePath(filePath string) string {
	now := fm.clock()
	fileName := generateArchiveFileName(fm.ArchiveNameFormat, filePath, now)

	if fm.UseTimestampSubdirs {
		subDir := filepath.Join(
			fm.ArchiveDir,
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			fmt.Sprintf("%02d", now.Day()),
		)
		return filepath.Join(subDir, fileName)
	}

	return filepath.Join(fm.ArchiveDir, fileName)
}

func (fm *FileManager) clock() time.Time {
	if fm.now == nil {
		return time.Now()
	}
	return fm.now()
}

// =============================================================================
// ARCHIVE FILE NAMING
// =============================================================================

// generateArchiveFileName generates a unique archive file name for filePath.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//               {original}  - Original file name (without extension)
//               {ext}       - Original extension, including the dot
//             An empty format uses DefaultArchiveNameFormat.
//   - filePath: The file being archived.
//   - now: The time used for the date and time placeholders.
//
// RETURNS:
//   - The generated file name.
//
// EXAMPLE:
//   format: "{original}_{timestamp}_{uuid}{ext}"
//   file:   "out/resources.json"
//   output: "resources_20240115_143022_a1b2c3d4-e5f6-7890-abcd-ef1234567890.json"
func generateArchiveFileName(format, filePath string, now time.Time) string {
	if format == "" {
		format = DefaultArchiveNameFormat
	}

	base := filepath.Base(filePath)
	ext := filepath.Ext(base)

	replacer := strings.NewReplacer(
		"{uuid}", uuid.New().String(),
		"{timestamp}", now.Format("20060102_150405"),
		"{date}", now.Format("20060102"),
		"{time}", now.Format("150405"),
		"{original}", strings.TrimSuffix(base, ext),
		"{ext}", ext,
	)

	return replacer.Replace(format)
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

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		return err
	}

	if err := destFile.Sync(); err != nil {
		destFile.Close()
		return err
	}

	return destFile.Close()
}

// FileExists reports whether path exists. Errors other than "not exist"
// (permissions, for instance) count as existing.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
