package mirror

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	storeRootRequiredMessageConstant      = "mirror store root must be provided"
	storeRootNotDirectoryTemplateConstant = "mirror store root %s is not a directory"
	storeRootUnreadableTemplateConstant   = "failed to read mirror store root: %w"
)

// ErrStoreRootRequired indicates the store root path was empty.
var ErrStoreRootRequired = errors.New(storeRootRequiredMessageConstant)

// StoreRootNotDirectoryError indicates the store root does not resolve to a directory.
type StoreRootNotDirectoryError struct {
	StoreRoot string
}

// Error describes the invalid store root.
func (rootError StoreRootNotDirectoryError) Error() string {
	return fmt.Sprintf(storeRootNotDirectoryTemplateConstant, rootError.StoreRoot)
}

// StoreEnumerator produces mirror entry names from a store root.
//
// The default implementation lists a directory, but the orchestrators depend
// only on this interface so the store can be backed by something else.
type StoreEnumerator interface {
	EnumerateEntries(storeRoot string) ([]string, error)
}

// FilesystemStore enumerates mirrors as immediate subdirectories of the store root.
type FilesystemStore struct{}

// NewFilesystemStore constructs a filesystem-backed store enumerator.
func NewFilesystemStore() *FilesystemStore {
	return &FilesystemStore{}
}

// EnumerateEntries lists the immediate subdirectory names of storeRoot in sorted order.
func (store *FilesystemStore) EnumerateEntries(storeRoot string) ([]string, error) {
	trimmedStoreRoot := strings.TrimSpace(storeRoot)
	if len(trimmedStoreRoot) == 0 {
		return nil, ErrStoreRootRequired
	}

	rootInfo, statError := os.Stat(trimmedStoreRoot)
	if statError != nil {
		return nil, fmt.Errorf(storeRootUnreadableTemplateConstant, statError)
	}
	if !rootInfo.IsDir() {
		return nil, StoreRootNotDirectoryError{StoreRoot: trimmedStoreRoot}
	}

	directoryEntries, readError := os.ReadDir(trimmedStoreRoot)
	if readError != nil {
		return nil, fmt.Errorf(storeRootUnreadableTemplateConstant, readError)
	}

	entryNames := make([]string, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		if !directoryEntry.IsDir() {
			continue
		}
		entryNames = append(entryNames, directoryEntry.Name())
	}

	return entryNames, nil
}
