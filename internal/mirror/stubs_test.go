package mirror_test

import (
	"context"
	"time"

	"github.com/temirov/mirrors/internal/githubcli"
)

// fakeVersionControl implements mirror.VersionControl with overridable
// behavior per method and records every invocation in order.
type fakeVersionControl struct {
	calls []string

	checkIsRepositoryFunc    func(repositoryPath string) bool
	cloneMirrorFunc          func(sourceURL string, targetPath string) error
	fetchRemoteFunc          func(repositoryPath string, remoteName string) error
	fetchAllRemotesFunc      func(repositoryPath string) error
	getRemoteURLFunc         func(repositoryPath string, remoteName string) (string, error)
	setRemoteURLFunc         func(repositoryPath string, remoteName string, remoteURL string) error
	setRemotePushURLFunc     func(repositoryPath string, remoteName string, pushURL string) error
	addRemoteFunc            func(repositoryPath string, remoteName string, remoteURL string) error
	addMirrorFetchRemoteFunc func(repositoryPath string, remoteName string, remoteURL string) error
	listRemotesFunc          func(repositoryPath string) ([]string, error)
	listRefsFunc             func(repositoryPath string, refPrefix string) ([]string, error)
	deleteRefFunc            func(repositoryPath string, refName string) error
	updateRefFunc            func(repositoryPath string, refName string, commitIdentifier string) error
	readSymbolicHeadFunc     func(repositoryPath string) (string, error)
	setSymbolicHeadFunc      func(repositoryPath string, refName string) error
	queryRemoteHeadFunc      func(repositoryPath string, remoteName string) (string, error)
	resolveCommitFunc        func(repositoryPath string, revision string) (string, error)
	listTreeEntriesFunc      func(repositoryPath string, treeish string) ([]string, error)
	readTreeFileFunc         func(repositoryPath string, treeish string, filePath string) (string, error)
	writeBlobFunc            func(repositoryPath string, content []byte) (string, error)
	readTreeIntoIndexFunc    func(repositoryPath string, indexFilePath string, treeish string) error
	updateIndexEntryFunc     func(repositoryPath string, indexFilePath string, fileMode string, blobIdentifier string, filePath string) error
	writeTreeFromIndexFunc   func(repositoryPath string, indexFilePath string) (string, error)
	commitTreeFunc           func(repositoryPath string, treeIdentifier string, parentIdentifier string, message string) (string, error)
	pushMirrorFunc           func(repositoryPath string, remoteName string) error
}

func (fake *fakeVersionControl) record(callName string) {
	fake.calls = append(fake.calls, callName)
}

func (fake *fakeVersionControl) CheckIsRepository(_ context.Context, repositoryPath string) bool {
	fake.record("CheckIsRepository")
	if fake.checkIsRepositoryFunc != nil {
		return fake.checkIsRepositoryFunc(repositoryPath)
	}
	return true
}

func (fake *fakeVersionControl) CloneMirror(_ context.Context, sourceURL string, targetPath string) error {
	fake.record("CloneMirror")
	if fake.cloneMirrorFunc != nil {
		return fake.cloneMirrorFunc(sourceURL, targetPath)
	}
	return nil
}

func (fake *fakeVersionControl) FetchRemote(_ context.Context, repositoryPath string, remoteName string) error {
	fake.record("FetchRemote")
	if fake.fetchRemoteFunc != nil {
		return fake.fetchRemoteFunc(repositoryPath, remoteName)
	}
	return nil
}

func (fake *fakeVersionControl) FetchAllRemotes(_ context.Context, repositoryPath string) error {
	fake.record("FetchAllRemotes")
	if fake.fetchAllRemotesFunc != nil {
		return fake.fetchAllRemotesFunc(repositoryPath)
	}
	return nil
}

func (fake *fakeVersionControl) GetRemoteURL(_ context.Context, repositoryPath string, remoteName string) (string, error) {
	fake.record("GetRemoteURL")
	if fake.getRemoteURLFunc != nil {
		return fake.getRemoteURLFunc(repositoryPath, remoteName)
	}
	return "", nil
}

func (fake *fakeVersionControl) SetRemoteURL(_ context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	fake.record("SetRemoteURL")
	if fake.setRemoteURLFunc != nil {
		return fake.setRemoteURLFunc(repositoryPath, remoteName, remoteURL)
	}
	return nil
}

func (fake *fakeVersionControl) SetRemotePushURL(_ context.Context, repositoryPath string, remoteName string, pushURL string) error {
	fake.record("SetRemotePushURL")
	if fake.setRemotePushURLFunc != nil {
		return fake.setRemotePushURLFunc(repositoryPath, remoteName, pushURL)
	}
	return nil
}

func (fake *fakeVersionControl) AddRemote(_ context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	fake.record("AddRemote")
	if fake.addRemoteFunc != nil {
		return fake.addRemoteFunc(repositoryPath, remoteName, remoteURL)
	}
	return nil
}

func (fake *fakeVersionControl) AddMirrorFetchRemote(_ context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	fake.record("AddMirrorFetchRemote")
	if fake.addMirrorFetchRemoteFunc != nil {
		return fake.addMirrorFetchRemoteFunc(repositoryPath, remoteName, remoteURL)
	}
	return nil
}

func (fake *fakeVersionControl) ListRemotes(_ context.Context, repositoryPath string) ([]string, error) {
	fake.record("ListRemotes")
	if fake.listRemotesFunc != nil {
		return fake.listRemotesFunc(repositoryPath)
	}
	return nil, nil
}

func (fake *fakeVersionControl) ListRefs(_ context.Context, repositoryPath string, refPrefix string) ([]string, error) {
	fake.record("ListRefs")
	if fake.listRefsFunc != nil {
		return fake.listRefsFunc(repositoryPath, refPrefix)
	}
	return nil, nil
}

func (fake *fakeVersionControl) DeleteRef(_ context.Context, repositoryPath string, refName string) error {
	fake.record("DeleteRef")
	if fake.deleteRefFunc != nil {
		return fake.deleteRefFunc(repositoryPath, refName)
	}
	return nil
}

func (fake *fakeVersionControl) UpdateRef(_ context.Context, repositoryPath string, refName string, commitIdentifier string) error {
	fake.record("UpdateRef")
	if fake.updateRefFunc != nil {
		return fake.updateRefFunc(repositoryPath, refName, commitIdentifier)
	}
	return nil
}

func (fake *fakeVersionControl) ReadSymbolicHead(_ context.Context, repositoryPath string) (string, error) {
	fake.record("ReadSymbolicHead")
	if fake.readSymbolicHeadFunc != nil {
		return fake.readSymbolicHeadFunc(repositoryPath)
	}
	return "refs/heads/main", nil
}

func (fake *fakeVersionControl) SetSymbolicHead(_ context.Context, repositoryPath string, refName string) error {
	fake.record("SetSymbolicHead")
	if fake.setSymbolicHeadFunc != nil {
		return fake.setSymbolicHeadFunc(repositoryPath, refName)
	}
	return nil
}

func (fake *fakeVersionControl) QueryRemoteHead(_ context.Context, repositoryPath string, remoteName string) (string, error) {
	fake.record("QueryRemoteHead")
	if fake.queryRemoteHeadFunc != nil {
		return fake.queryRemoteHeadFunc(repositoryPath, remoteName)
	}
	return "ref: refs/heads/main\tHEAD\n", nil
}

func (fake *fakeVersionControl) ResolveCommit(_ context.Context, repositoryPath string, revision string) (string, error) {
	fake.record("ResolveCommit")
	if fake.resolveCommitFunc != nil {
		return fake.resolveCommitFunc(repositoryPath, revision)
	}
	return "", nil
}

func (fake *fakeVersionControl) ListTreeEntries(_ context.Context, repositoryPath string, treeish string) ([]string, error) {
	fake.record("ListTreeEntries")
	if fake.listTreeEntriesFunc != nil {
		return fake.listTreeEntriesFunc(repositoryPath, treeish)
	}
	return nil, nil
}

func (fake *fakeVersionControl) ReadTreeFile(_ context.Context, repositoryPath string, treeish string, filePath string) (string, error) {
	fake.record("ReadTreeFile")
	if fake.readTreeFileFunc != nil {
		return fake.readTreeFileFunc(repositoryPath, treeish, filePath)
	}
	return "", nil
}

func (fake *fakeVersionControl) WriteBlob(_ context.Context, repositoryPath string, content []byte) (string, error) {
	fake.record("WriteBlob")
	if fake.writeBlobFunc != nil {
		return fake.writeBlobFunc(repositoryPath, content)
	}
	return "blob-identifier", nil
}

func (fake *fakeVersionControl) ReadTreeIntoIndex(_ context.Context, repositoryPath string, indexFilePath string, treeish string) error {
	fake.record("ReadTreeIntoIndex")
	if fake.readTreeIntoIndexFunc != nil {
		return fake.readTreeIntoIndexFunc(repositoryPath, indexFilePath, treeish)
	}
	return nil
}

func (fake *fakeVersionControl) UpdateIndexEntry(_ context.Context, repositoryPath string, indexFilePath string, fileMode string, blobIdentifier string, filePath string) error {
	fake.record("UpdateIndexEntry")
	if fake.updateIndexEntryFunc != nil {
		return fake.updateIndexEntryFunc(repositoryPath, indexFilePath, fileMode, blobIdentifier, filePath)
	}
	return nil
}

func (fake *fakeVersionControl) WriteTreeFromIndex(_ context.Context, repositoryPath string, indexFilePath string) (string, error) {
	fake.record("WriteTreeFromIndex")
	if fake.writeTreeFromIndexFunc != nil {
		return fake.writeTreeFromIndexFunc(repositoryPath, indexFilePath)
	}
	return "tree-identifier", nil
}

func (fake *fakeVersionControl) CommitTree(_ context.Context, repositoryPath string, treeIdentifier string, parentIdentifier string, message string) (string, error) {
	fake.record("CommitTree")
	if fake.commitTreeFunc != nil {
		return fake.commitTreeFunc(repositoryPath, treeIdentifier, parentIdentifier, message)
	}
	return "commit-identifier", nil
}

func (fake *fakeVersionControl) PushMirror(_ context.Context, repositoryPath string, remoteName string) error {
	fake.record("PushMirror")
	if fake.pushMirrorFunc != nil {
		return fake.pushMirrorFunc(repositoryPath, remoteName)
	}
	return nil
}

func (fake *fakeVersionControl) callCount(callName string) int {
	count := 0
	for _, recordedCall := range fake.calls {
		if recordedCall == callName {
			count++
		}
	}
	return count
}

// fakeHostingAPI implements mirror.HostingAPI with overridable behavior.
type fakeHostingAPI struct {
	existsFunc            func(owner string, repositoryName string) (bool, error)
	createFunc            func(specification githubcli.RepositorySpecification) error
	createdSpecifications []githubcli.RepositorySpecification
	existenceLookupCount  int
}

func (fake *fakeHostingAPI) RepositoryExists(_ context.Context, owner string, repositoryName string) (bool, error) {
	fake.existenceLookupCount++
	if fake.existsFunc != nil {
		return fake.existsFunc(owner, repositoryName)
	}
	return false, nil
}

func (fake *fakeHostingAPI) CreateRepository(_ context.Context, specification githubcli.RepositorySpecification) error {
	fake.createdSpecifications = append(fake.createdSpecifications, specification)
	if fake.createFunc != nil {
		return fake.createFunc(specification)
	}
	return nil
}

// fakeStoreEnumerator returns a fixed set of entry names.
type fakeStoreEnumerator struct {
	entryNames       []string
	enumerationError error
}

func (fake fakeStoreEnumerator) EnumerateEntries(string) ([]string, error) {
	if fake.enumerationError != nil {
		return nil, fake.enumerationError
	}
	return fake.entryNames, nil
}

// recordingPauser captures pauses instead of sleeping.
type recordingPauser struct {
	pauses []time.Duration
}

func (pauser *recordingPauser) Pause(duration time.Duration) {
	pauser.pauses = append(pauser.pauses, duration)
}
