package lfs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	bareObjectStoreRelativePathConstant     = "lfs/objects"
	workingObjectStoreRelativePathConstant  = ".git/lfs/objects"
	payloadDirectoryPermissionsConstant     = os.FileMode(0o755)
	fileSystemNotConfiguredMessageConstant  = "file system not configured"
	payloadCopyErrorTemplateConstant        = "lfs payload copy of %s failed: %w"
	payloadEnumerationErrorTemplateConstant = "lfs payload enumeration failed: %w"
)

var (
	// ErrFileSystemNotConfigured indicates the reconciler was constructed without a file system.
	ErrFileSystemNotConfigured = errors.New(fileSystemNotConfiguredMessageConstant)
)

// PayloadReconciliationReport summarizes a payload copy between object stores.
type PayloadReconciliationReport struct {
	CopiedObjectCount int
	CopiedBytes       uint64
}

// PayloadReconciler copies LFS payload objects between repository object stores.
//
// BFG writes converted payloads into the bare repository's lfs/objects
// directory, which git clone does not transfer, so the destination working
// clone starts without them.
type PayloadReconciler struct {
	fileSystem afero.Fs
}

// NewPayloadReconciler constructs a reconciler over the provided file system.
func NewPayloadReconciler(fileSystem afero.Fs) (*PayloadReconciler, error) {
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	return &PayloadReconciler{fileSystem: fileSystem}, nil
}

// ReconcilePayloads copies every payload object from the bare scratch repository
// into the destination working clone's object store.
//
// Existing destination directories and objects are tolerated; payloads are
// content addressed, so rewriting an object with the same name is harmless.
// A scratch repository without payloads yields an empty report.
func (reconciler *PayloadReconciler) ReconcilePayloads(scratchRepositoryPath string, destinationRepositoryPath string) (PayloadReconciliationReport, error) {
	report := PayloadReconciliationReport{}
	sourceObjectStorePath := filepath.Join(scratchRepositoryPath, filepath.FromSlash(bareObjectStoreRelativePathConstant))
	destinationObjectStorePath := filepath.Join(destinationRepositoryPath, filepath.FromSlash(workingObjectStoreRelativePathConstant))

	sourceExists, existenceError := afero.DirExists(reconciler.fileSystem, sourceObjectStorePath)
	if existenceError != nil {
		return report, fmt.Errorf(payloadEnumerationErrorTemplateConstant, existenceError)
	}
	if !sourceExists {
		return report, nil
	}

	walkError := afero.Walk(reconciler.fileSystem, sourceObjectStorePath, func(currentPath string, fileInformation os.FileInfo, visitError error) error {
		if visitError != nil {
			return visitError
		}
		if fileInformation.IsDir() {
			return nil
		}

		relativePath, relativeError := filepath.Rel(sourceObjectStorePath, currentPath)
		if relativeError != nil {
			return relativeError
		}

		destinationPath := filepath.Join(destinationObjectStorePath, relativePath)
		copiedBytes, copyError := reconciler.copyPayloadObject(currentPath, destinationPath)
		if copyError != nil {
			return fmt.Errorf(payloadCopyErrorTemplateConstant, relativePath, copyError)
		}

		report.CopiedObjectCount++
		report.CopiedBytes += uint64(copiedBytes)
		return nil
	})
	if walkError != nil {
		return PayloadReconciliationReport{}, walkError
	}

	return report, nil
}

func (reconciler *PayloadReconciler) copyPayloadObject(sourcePath string, destinationPath string) (int64, error) {
	directoryError := reconciler.fileSystem.MkdirAll(filepath.Dir(destinationPath), payloadDirectoryPermissionsConstant)
	if directoryError != nil {
		return 0, directoryError
	}

	sourceFile, openError := reconciler.fileSystem.Open(sourcePath)
	if openError != nil {
		return 0, openError
	}
	defer sourceFile.Close()

	destinationFile, createError := reconciler.fileSystem.Create(destinationPath)
	if createError != nil {
		return 0, createError
	}

	copiedBytes, copyError := io.Copy(destinationFile, sourceFile)
	if copyError != nil {
		destinationFile.Close()
		return copiedBytes, copyError
	}

	return copiedBytes, destinationFile.Close()
}
