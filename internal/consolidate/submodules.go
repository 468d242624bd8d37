package consolidate

import (
	"fmt"
	"path/filepath"
	"sort"

	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/spf13/afero"
)

const (
	manifestFileNameConstant               = ".gitmodules"
	manifestReadErrorTemplateConstant      = "unable to read submodule manifest %s: %w"
	manifestParseErrorTemplateConstant     = "submodule manifest %s cannot be parsed: %s"
	manifestExistenceErrorTemplateConstant = "unable to inspect submodule manifest %s: %w"
)

// ManifestScanReport describes the submodule manifest found at the root of a tree.
type ManifestScanReport struct {
	ManifestPresent bool
	ManifestPath    string
	SubmodulePaths  []string
}

// ManifestParseError reports a submodule manifest that could not be parsed.
type ManifestParseError struct {
	Path  string
	Cause error
}

// Error describes the parse failure.
func (parseError ManifestParseError) Error() string {
	return fmt.Sprintf(manifestParseErrorTemplateConstant, parseError.Path, parseError.Cause)
}

// Unwrap exposes the underlying cause.
func (parseError ManifestParseError) Unwrap() error {
	return parseError.Cause
}

// ManifestScanner detects submodule manifests surviving a consolidation merge.
type ManifestScanner struct {
	fileSystem afero.Fs
}

// NewManifestScanner constructs a scanner over the provided filesystem.
func NewManifestScanner(fileSystem afero.Fs) (*ManifestScanner, error) {
	if fileSystem == nil {
		return nil, errFileSystemMissing
	}
	return &ManifestScanner{fileSystem: fileSystem}, nil
}

// ScanTree reports whether treePath carries a submodule manifest at its root
// and which submodule paths the manifest declares.
func (scanner *ManifestScanner) ScanTree(treePath string) (ManifestScanReport, error) {
	manifestPath := filepath.Join(treePath, manifestFileNameConstant)

	manifestExists, existenceError := afero.Exists(scanner.fileSystem, manifestPath)
	if existenceError != nil {
		return ManifestScanReport{}, fmt.Errorf(manifestExistenceErrorTemplateConstant, manifestPath, existenceError)
	}
	if !manifestExists {
		return ManifestScanReport{}, nil
	}

	manifestDocument, readError := afero.ReadFile(scanner.fileSystem, manifestPath)
	if readError != nil {
		return ManifestScanReport{}, fmt.Errorf(manifestReadErrorTemplateConstant, manifestPath, readError)
	}

	manifest := gitconfig.NewModules()
	if unmarshalError := manifest.Unmarshal(manifestDocument); unmarshalError != nil {
		return ManifestScanReport{}, ManifestParseError{Path: manifestPath, Cause: unmarshalError}
	}

	submodulePaths := make([]string, 0, len(manifest.Submodules))
	for _, declaredSubmodule := range manifest.Submodules {
		submodulePaths = append(submodulePaths, declaredSubmodule.Path)
	}
	sort.Strings(submodulePaths)

	return ManifestScanReport{
		ManifestPresent: true,
		ManifestPath:    manifestPath,
		SubmodulePaths:  submodulePaths,
	}, nil
}
