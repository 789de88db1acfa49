package platform

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
)

// Timeline files
const (
	TimelineDirName = "Subtitles"
	// MaxNameDifference is how many bytes two names may differ by to be considered the same file
	MaxNameDifference = 10
)

// TimelineExtensions are the recognised timeline file extensions
var TimelineExtensions = []string{".yaml", ".yml"}

// LinuxFileManagers are tried in order when xdg-open is unavailable
var LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}

// OpenFileInManager opens the system file manager with the file selected
func OpenFileInManager(filePath string) error {
	foundPath, err := FindTimelineWithFallback(filePath)
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(foundPath)
	if err != nil {
		return errors.Wrap(err, "failed to get absolute path")
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam+absPath).Run()
	default:
		return openFileInManagerLinux(absPath)
	}
}

func openFileInManagerLinux(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if err := exec.Command(fm, dir).Run(); err == nil {
			return nil
		}
	}
	return errors.New("failed to open file in manager: no suitable file manager found")
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetHomeTimelineDir returns the default directory for timeline files
func GetHomeTimelineDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}
	return filepath.Join(homeDir, TimelineDirName), nil
}

// IsTimelineFile reports whether name has a timeline extension
func IsTimelineFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range TimelineExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FindLatestTimeline returns the most recently modified timeline file in dir
func FindLatestTimeline(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read directory %s", dir)
	}

	var latest string
	var latestInfo os.FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !IsTimelineFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latestInfo == nil || info.ModTime().After(latestInfo.ModTime()) {
			latest, latestInfo = filepath.Join(dir, entry.Name()), info
		}
	}

	if latest == "" {
		return "", errors.Errorf("no timeline files in %s", dir)
	}
	return latest, nil
}

// FindTimelineWithFallback returns filePath if it exists, or else a timeline
// file in the same directory with a similar name
func FindTimelineWithFallback(filePath string) (string, error) {
	if filePath == "" {
		return "", errors.New("file path is empty")
	}

	if _, err := os.Stat(filePath); err == nil {
		return filePath, nil
	}

	dir := filepath.Dir(filePath)
	originalName := filepath.Base(filePath)
	baseName := strings.TrimSuffix(originalName, filepath.Ext(originalName))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read directory %s", dir)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() || !IsTimelineFile(entry.Name()) {
			continue
		}
		entryName := entry.Name()
		entryBase := strings.TrimSuffix(entryName, filepath.Ext(entryName))
		if isSimilarFileName(entryBase, baseName) {
			candidates = append(candidates, filepath.Join(dir, entryName))
		}
	}

	if len(candidates) == 0 {
		return "", errors.Errorf("file not found: %s", filePath)
	}
	sort.Strings(candidates)
	return candidates[0], nil
}

// isSimilarFileName checks if two file names are similar enough to be considered the same file
func isSimilarFileName(name1, name2 string) bool {
	clean1 := strings.TrimSpace(name1)
	clean2 := strings.TrimSpace(name2)

	if strings.EqualFold(clean1, clean2) {
		return true
	}

	// Copies and truncated names
	if strings.Contains(clean1, clean2) || strings.Contains(clean2, clean1) {
		diff := len(clean1) - len(clean2)
		if diff < 0 {
			diff = -diff
		}
		return diff <= MaxNameDifference
	}

	return false
}
