package consolidate

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/temirov/grit/internal/pipeline"
)

const (
	stagingDirectoryTemplateConstant      = ".grit-relocate-%d"
	gitMetadataDirectoryNameConstant      = ".git"
	stagingCreationErrorTemplateConstant  = "unable to create staging directory %s: %w"
	worktreeListingErrorTemplateConstant  = "unable to list worktree entries in %s: %w"
	entryRelocationErrorTemplateConstant  = "unable to relocate %s into staging: %w"
	stagingPromotionErrorTemplateConstant = "unable to promote staging directory to %s: %w"
	stagingDirectoryModeConstant          = 0o755
)

// RelocationReport captures the outcome of a two-phase relocation.
type RelocationReport struct {
	StagingDirectoryName string
	RelocatedEntries     []string
}

// Relocator moves every top-level worktree entry into a named subdirectory.
//
// The move runs through a staging directory whose name carries a timestamp,
// so an entry already named like the destination subdirectory is swept into
// staging with everything else instead of colliding with it.
type Relocator struct {
	fileSystem afero.Fs
	clock      pipeline.Clock
}

// NewRelocator constructs a Relocator over the provided filesystem and clock.
func NewRelocator(fileSystem afero.Fs, clock pipeline.Clock) (*Relocator, error) {
	if fileSystem == nil {
		return nil, errFileSystemMissing
	}
	if clock == nil {
		clock = pipeline.SystemClock{}
	}
	return &Relocator{fileSystem: fileSystem, clock: clock}, nil
}

// RelocateTopLevelEntries moves every top-level entry of repositoryPath except
// repository metadata into subdirectoryName and reports what moved.
func (relocator *Relocator) RelocateTopLevelEntries(repositoryPath string, subdirectoryName string) (RelocationReport, error) {
	stagingDirectoryName := fmt.Sprintf(stagingDirectoryTemplateConstant, relocator.clock.Now().UnixNano())
	stagingDirectoryPath := filepath.Join(repositoryPath, stagingDirectoryName)

	if creationError := relocator.fileSystem.Mkdir(stagingDirectoryPath, stagingDirectoryModeConstant); creationError != nil {
		return RelocationReport{}, fmt.Errorf(stagingCreationErrorTemplateConstant, stagingDirectoryPath, creationError)
	}

	worktreeEntries, listingError := afero.ReadDir(relocator.fileSystem, repositoryPath)
	if listingError != nil {
		return RelocationReport{}, fmt.Errorf(worktreeListingErrorTemplateConstant, repositoryPath, listingError)
	}

	relocatedEntries := make([]string, 0, len(worktreeEntries))
	for _, worktreeEntry := range worktreeEntries {
		entryName := worktreeEntry.Name()
		if entryName == gitMetadataDirectoryNameConstant || entryName == stagingDirectoryName {
			continue
		}
		entryPath := filepath.Join(repositoryPath, entryName)
		stagedPath := filepath.Join(stagingDirectoryPath, entryName)
		if relocationError := relocator.fileSystem.Rename(entryPath, stagedPath); relocationError != nil {
			return RelocationReport{}, fmt.Errorf(entryRelocationErrorTemplateConstant, entryName, relocationError)
		}
		relocatedEntries = append(relocatedEntries, entryName)
	}
	sort.Strings(relocatedEntries)

	subdirectoryPath := filepath.Join(repositoryPath, subdirectoryName)
	if promotionError := relocator.fileSystem.Rename(stagingDirectoryPath, subdirectoryPath); promotionError != nil {
		return RelocationReport{}, fmt.Errorf(stagingPromotionErrorTemplateConstant, subdirectoryPath, promotionError)
	}

	return RelocationReport{
		StagingDirectoryName: stagingDirectoryName,
		RelocatedEntries:     relocatedEntries,
	}, nil
}
