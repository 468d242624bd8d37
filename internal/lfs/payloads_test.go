package lfs_test

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/temirov/grit/internal/lfs"
)

const (
	testScratchRepositoryConstant     = "/workspace/widgets.git"
	testDestinationRepositoryConstant = "/workspace/widgets"
	testFirstPayloadRelativeConstant  = "ab/cd/abcd1234"
	testSecondPayloadRelativeConstant = "ef/01/ef015678"
	testFirstPayloadContentConstant   = "first payload content"
	testSecondPayloadContentConstant  = "second payload content"
)

func writePayloadObject(testInstance *testing.T, fileSystem afero.Fs, repositoryPath string, objectStoreRelativePath string, payloadRelativePath string, payloadContent string) string {
	payloadPath := filepath.Join(repositoryPath, filepath.FromSlash(objectStoreRelativePath), filepath.FromSlash(payloadRelativePath))
	require.NoError(testInstance, fileSystem.MkdirAll(filepath.Dir(payloadPath), 0o755))
	require.NoError(testInstance, afero.WriteFile(fileSystem, payloadPath, []byte(payloadContent), 0o644))
	return payloadPath
}

func TestNewPayloadReconcilerValidation(testInstance *testing.T) {
	reconciler, creationError := lfs.NewPayloadReconciler(nil)
	require.Error(testInstance, creationError)
	require.ErrorIs(testInstance, creationError, lfs.ErrFileSystemNotConfigured)
	require.Nil(testInstance, reconciler)
}

func TestReconcilePayloadsCopiesObjectStore(testInstance *testing.T) {
	memoryFileSystem := afero.NewMemMapFs()
	writePayloadObject(testInstance, memoryFileSystem, testScratchRepositoryConstant, "lfs/objects", testFirstPayloadRelativeConstant, testFirstPayloadContentConstant)
	writePayloadObject(testInstance, memoryFileSystem, testScratchRepositoryConstant, "lfs/objects", testSecondPayloadRelativeConstant, testSecondPayloadContentConstant)
	require.NoError(testInstance, memoryFileSystem.MkdirAll(testDestinationRepositoryConstant, 0o755))

	reconciler, creationError := lfs.NewPayloadReconciler(memoryFileSystem)
	require.NoError(testInstance, creationError)

	report, reconciliationError := reconciler.ReconcilePayloads(testScratchRepositoryConstant, testDestinationRepositoryConstant)
	require.NoError(testInstance, reconciliationError)
	require.Equal(testInstance, 2, report.CopiedObjectCount)
	require.Equal(testInstance, uint64(len(testFirstPayloadContentConstant)+len(testSecondPayloadContentConstant)), report.CopiedBytes)

	firstCopiedPath := filepath.Join(testDestinationRepositoryConstant, ".git", "lfs", "objects", filepath.FromSlash(testFirstPayloadRelativeConstant))
	copiedContent, readError := afero.ReadFile(memoryFileSystem, firstCopiedPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, testFirstPayloadContentConstant, string(copiedContent))
}

func TestReconcilePayloadsToleratesExistingDestinationObjects(testInstance *testing.T) {
	memoryFileSystem := afero.NewMemMapFs()
	writePayloadObject(testInstance, memoryFileSystem, testScratchRepositoryConstant, "lfs/objects", testFirstPayloadRelativeConstant, testFirstPayloadContentConstant)
	writePayloadObject(testInstance, memoryFileSystem, testDestinationRepositoryConstant, ".git/lfs/objects", testFirstPayloadRelativeConstant, "stale content")

	reconciler, creationError := lfs.NewPayloadReconciler(memoryFileSystem)
	require.NoError(testInstance, creationError)

	report, reconciliationError := reconciler.ReconcilePayloads(testScratchRepositoryConstant, testDestinationRepositoryConstant)
	require.NoError(testInstance, reconciliationError)
	require.Equal(testInstance, 1, report.CopiedObjectCount)

	copiedPath := filepath.Join(testDestinationRepositoryConstant, ".git", "lfs", "objects", filepath.FromSlash(testFirstPayloadRelativeConstant))
	copiedContent, readError := afero.ReadFile(memoryFileSystem, copiedPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, testFirstPayloadContentConstant, string(copiedContent))
}

func TestReconcilePayloadsWithoutSourceObjectStoreReturnsEmptyReport(testInstance *testing.T) {
	memoryFileSystem := afero.NewMemMapFs()
	require.NoError(testInstance, memoryFileSystem.MkdirAll(testScratchRepositoryConstant, 0o755))
	require.NoError(testInstance, memoryFileSystem.MkdirAll(testDestinationRepositoryConstant, 0o755))

	reconciler, creationError := lfs.NewPayloadReconciler(memoryFileSystem)
	require.NoError(testInstance, creationError)

	report, reconciliationError := reconciler.ReconcilePayloads(testScratchRepositoryConstant, testDestinationRepositoryConstant)
	require.NoError(testInstance, reconciliationError)
	require.Zero(testInstance, report.CopiedObjectCount)
	require.Zero(testInstance, report.CopiedBytes)
}
