package consolidate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

const (
	directoryWalkErrorTemplateConstant    = "unable to walk worktree %s: %w"
	directoryReadErrorTemplateConstant    = "unable to read directory %s: %w"
	directoryRemovalErrorTemplateConstant = "unable to remove empty directory %s: %w"
)

// EmptyDirectoryPruner removes directories left empty after submodule
// deinitialization. Git does not track empty directories, so stale ones
// would otherwise survive into the relocated tree.
type EmptyDirectoryPruner struct {
	fileSystem afero.Fs
}

// NewEmptyDirectoryPruner constructs a pruner over the provided filesystem.
func NewEmptyDirectoryPruner(fileSystem afero.Fs) (*EmptyDirectoryPruner, error) {
	if fileSystem == nil {
		return nil, errFileSystemMissing
	}
	return &EmptyDirectoryPruner{fileSystem: fileSystem}, nil
}

// PruneEmptyDirectories removes every empty directory beneath repositoryPath,
// deepest first so directories emptied by the removal of their children are
// pruned in the same pass. Repository metadata is never touched. Returns the
// removed directories relative to repositoryPath.
func (pruner *EmptyDirectoryPruner) PruneEmptyDirectories(repositoryPath string) ([]string, error) {
	candidateDirectories := make([]string, 0)
	walkError := afero.Walk(pruner.fileSystem, repositoryPath, func(walkedPath string, entryInformation os.FileInfo, entryError error) error {
		if entryError != nil {
			return entryError
		}
		if !entryInformation.IsDir() {
			return nil
		}
		if entryInformation.Name() == gitMetadataDirectoryNameConstant {
			return filepath.SkipDir
		}
		if walkedPath == repositoryPath {
			return nil
		}
		candidateDirectories = append(candidateDirectories, walkedPath)
		return nil
	})
	if walkError != nil {
		return nil, fmt.Errorf(directoryWalkErrorTemplateConstant, repositoryPath, walkError)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(candidateDirectories)))

	removedDirectories := make([]string, 0)
	for _, candidateDirectory := range candidateDirectories {
		directoryEntries, readError := afero.ReadDir(pruner.fileSystem, candidateDirectory)
		if readError != nil {
			return nil, fmt.Errorf(directoryReadErrorTemplateConstant, candidateDirectory, readError)
		}
		if len(directoryEntries) > 0 {
			continue
		}
		if removalError := pruner.fileSystem.Remove(candidateDirectory); removalError != nil {
			return nil, fmt.Errorf(directoryRemovalErrorTemplateConstant, candidateDirectory, removalError)
		}
		relativeDirectory, relativeError := filepath.Rel(repositoryPath, candidateDirectory)
		if relativeError != nil {
			relativeDirectory = candidateDirectory
		}
		removedDirectories = append(removedDirectories, relativeDirectory)
	}
	sort.Strings(removedDirectories)

	return removedDirectories, nil
}
