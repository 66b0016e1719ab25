package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/mirrors/internal/execshell"
)

const (
	requiredValueMessageConstant         = "value required"
	executorNotConfiguredMessageConstant = "git executor not configured"
	terminalPromptEnvironmentKeyConstant = "GIT_TERMINAL_PROMPT"
	terminalPromptDisabledValueConstant  = "0"
	indexFileEnvironmentKeyConstant      = "GIT_INDEX_FILE"
	authorNameEnvironmentKeyConstant     = "GIT_AUTHOR_NAME"
	authorEmailEnvironmentKeyConstant    = "GIT_AUTHOR_EMAIL"
	committerNameEnvironmentKeyConstant  = "GIT_COMMITTER_NAME"
	committerEmailEnvironmentKeyConstant = "GIT_COMMITTER_EMAIL"
	syntheticCommitterNameConstant       = "mirrors"
	syntheticCommitterEmailConstant      = "mirrors@localhost"
	revParseSubcommandConstant           = "rev-parse"
	insideGitDirectoryFlagConstant       = "--is-inside-git-dir"
	verifyFlagConstant                   = "--verify"
	quietFlagConstant                    = "--quiet"
	cloneSubcommandConstant              = "clone"
	mirrorFlagConstant                   = "--mirror"
	fetchSubcommandConstant              = "fetch"
	pruneFlagConstant                    = "--prune"
	allRemotesFlagConstant               = "--all"
	pushSubcommandConstant               = "push"
	remoteSubcommandConstant             = "remote"
	remoteGetURLSubcommandConstant       = "get-url"
	remoteSetURLSubcommandConstant       = "set-url"
	remoteAddSubcommandConstant          = "add"
	remotePushFlagConstant               = "--push"
	remoteMirrorFetchFlagConstant        = "--mirror=fetch"
	forEachRefSubcommandConstant         = "for-each-ref"
	forEachRefFormatFlagConstant         = "--format=%(refname)"
	updateRefSubcommandConstant          = "update-ref"
	deleteRefFlagConstant                = "-d"
	symbolicRefSubcommandConstant        = "symbolic-ref"
	headReferenceNameConstant            = "HEAD"
	lsRemoteSubcommandConstant           = "ls-remote"
	symrefFlagConstant                   = "--symref"
	lsTreeSubcommandConstant             = "ls-tree"
	lsTreeNameOnlyFlagConstant           = "--name-only"
	showSubcommandConstant               = "show"
	hashObjectSubcommandConstant         = "hash-object"
	hashObjectWriteFlagConstant          = "-w"
	hashObjectStdinFlagConstant          = "--stdin"
	readTreeSubcommandConstant           = "read-tree"
	updateIndexSubcommandConstant        = "update-index"
	updateIndexAddFlagConstant           = "--add"
	updateIndexCacheInfoFlagConstant     = "--cacheinfo"
	writeTreeSubcommandConstant          = "write-tree"
	commitTreeSubcommandConstant         = "commit-tree"
	commitTreeParentFlagConstant         = "-p"
	commitTreeMessageFlagConstant        = "-m"
	headTreePathSeparatorConstant        = ":"
	cacheInfoFieldSeparatorConstant      = ","
	refListLineSeparatorConstant         = "\n"
)

// ErrExecutorNotConfigured indicates a RepositoryManager was constructed without a git executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// GitExecutor abstracts structured git invocations.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryManager performs git operations against mirror clones through a GitExecutor.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager around the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// CheckIsRepository reports whether the provided path is inside a git directory.
func (manager *RepositoryManager) CheckIsRepository(executionContext context.Context, repositoryPath string) bool {
	result, executionError := manager.run(executionContext, repositoryPath, nil, revParseSubcommandConstant, insideGitDirectoryFlagConstant)
	if executionError != nil {
		return false
	}
	return strings.TrimSpace(result.StandardOutput) == "true"
}

// CloneMirror creates a mirror clone of sourceURL at targetPath.
func (manager *RepositoryManager) CloneMirror(executionContext context.Context, sourceURL string, targetPath string) error {
	_, executionError := manager.run(executionContext, "", nil, cloneSubcommandConstant, mirrorFlagConstant, sourceURL, targetPath)
	return executionError
}

// FetchRemote fetches the named remote with pruning of deleted upstream refs.
func (manager *RepositoryManager) FetchRemote(executionContext context.Context, repositoryPath string, remoteName string) error {
	_, executionError := manager.run(executionContext, repositoryPath, nil, fetchSubcommandConstant, remoteName, pruneFlagConstant)
	return executionError
}

// FetchAllRemotes fetches every configured remote with pruning.
func (manager *RepositoryManager) FetchAllRemotes(executionContext context.Context, repositoryPath string) error {
	_, executionError := manager.run(executionContext, repositoryPath, nil, fetchSubcommandConstant, allRemotesFlagConstant, pruneFlagConstant)
	return executionError
}

// GetRemoteURL returns the fetch URL configured for the named remote.
func (manager *RepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	result, executionError := manager.run(executionContext, repositoryPath, nil, remoteSubcommandConstant, remoteGetURLSubcommandConstant, remoteName)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(result.StandardOutput), nil
}

// SetRemoteURL updates the fetch URL for the named remote.
func (manager *RepositoryManager) SetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	_, executionError := manager.run(executionContext, repositoryPath, nil, remoteSubcommandConstant, remoteSetURLSubcommandConstant, remoteName, remoteURL)
	return executionError
}

// SetRemotePushURL updates the push URL for the named remote.
func (manager *RepositoryManager) SetRemotePushURL(executionContext context.Context, repositoryPath string, remoteName string, pushURL string) error {
	_, executionError := manager.run(executionContext, repositoryPath, nil, remoteSubcommandConstant, remoteSetURLSubcommandConstant, remotePushFlagConstant, remoteName, pushURL)
	return executionError
}

// AddRemote registers a new remote with the provided fetch URL.
func (manager *RepositoryManager) AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	_, executionError := manager.run(executionContext, repositoryPath, nil, remoteSubcommandConstant, remoteAddSubcommandConstant, remoteName, remoteURL)
	return executionError
}

// AddMirrorFetchRemote registers a remote whose fetch refspec mirrors the complete ref namespace.
func (manager *RepositoryManager) AddMirrorFetchRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	_, executionError := manager.run(executionContext, repositoryPath, nil, remoteSubcommandConstant, remoteAddSubcommandConstant, remoteMirrorFetchFlagConstant, remoteName, remoteURL)
	return executionError
}

// ListRemotes returns the names of the configured remotes.
func (manager *RepositoryManager) ListRemotes(executionContext context.Context, repositoryPath string) ([]string, error) {
	result, executionError := manager.run(executionContext, repositoryPath, nil, remoteSubcommandConstant)
	if executionError != nil {
		return nil, executionError
	}
	return splitOutputLines(result.StandardOutput), nil
}

// ListRefs returns fully qualified ref names beneath the provided prefix.
func (manager *RepositoryManager) ListRefs(executionContext context.Context, repositoryPath string, refPrefix string) ([]string, error) {
	arguments := []string{forEachRefSubcommandConstant, forEachRefFormatFlagConstant}
	if len(strings.TrimSpace(refPrefix)) > 0 {
		arguments = append(arguments, refPrefix)
	}
	result, executionError := manager.run(executionContext, repositoryPath, nil, arguments...)
	if executionError != nil {
		return nil, executionError
	}
	return splitOutputLines(result.StandardOutput), nil
}

// DeleteRef removes the named ref.
func (manager *RepositoryManager) DeleteRef(executionContext context.Context, repositoryPath string, refName string) error {
	_, executionError := manager.run(executionContext, repositoryPath, nil, updateRefSubcommandConstant, deleteRefFlagConstant, refName)
	return executionError
}

// UpdateRef points the named ref at the provided commit.
func (manager *RepositoryManager) UpdateRef(executionContext context.Context, repositoryPath string, refName string, commitIdentifier string) error {
	_, executionError := manager.run(executionContext, repositoryPath, nil, updateRefSubcommandConstant, refName, commitIdentifier)
	return executionError
}

// ReadSymbolicHead returns the fully qualified ref HEAD points to.
func (manager *RepositoryManager) ReadSymbolicHead(executionContext context.Context, repositoryPath string) (string, error) {
	result, executionError := manager.run(executionContext, repositoryPath, nil, symbolicRefSubcommandConstant, headReferenceNameConstant)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(result.StandardOutput), nil
}

// SetSymbolicHead repoints HEAD at the provided fully qualified ref.
func (manager *RepositoryManager) SetSymbolicHead(executionContext context.Context, repositoryPath string, refName string) error {
	_, executionError := manager.run(executionContext, repositoryPath, nil, symbolicRefSubcommandConstant, headReferenceNameConstant, refName)
	return executionError
}

// QueryRemoteHead returns the raw symbolic ref advertisement for the named remote's HEAD.
func (manager *RepositoryManager) QueryRemoteHead(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	result, executionError := manager.run(executionContext, repositoryPath, nil, lsRemoteSubcommandConstant, symrefFlagConstant, remoteName, headReferenceNameConstant)
	if executionError != nil {
		return "", executionError
	}
	return result.StandardOutput, nil
}

// ResolveCommit resolves a revision expression to an object identifier.
func (manager *RepositoryManager) ResolveCommit(executionContext context.Context, repositoryPath string, revision string) (string, error) {
	result, executionError := manager.run(executionContext, repositoryPath, nil, revParseSubcommandConstant, verifyFlagConstant, quietFlagConstant, revision)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(result.StandardOutput), nil
}

// ListTreeEntries lists top-level file names reachable from the provided tree-ish.
func (manager *RepositoryManager) ListTreeEntries(executionContext context.Context, repositoryPath string, treeish string) ([]string, error) {
	result, executionError := manager.run(executionContext, repositoryPath, nil, lsTreeSubcommandConstant, lsTreeNameOnlyFlagConstant, treeish)
	if executionError != nil {
		return nil, executionError
	}
	return splitOutputLines(result.StandardOutput), nil
}

// ReadTreeFile returns the content of a file stored in the provided tree-ish.
func (manager *RepositoryManager) ReadTreeFile(executionContext context.Context, repositoryPath string, treeish string, filePath string) (string, error) {
	objectSpecifier := treeish + headTreePathSeparatorConstant + filePath
	result, executionError := manager.run(executionContext, repositoryPath, nil, showSubcommandConstant, objectSpecifier)
	if executionError != nil {
		return "", executionError
	}
	return result.StandardOutput, nil
}

// WriteBlob stores content as a blob object and returns its identifier.
func (manager *RepositoryManager) WriteBlob(executionContext context.Context, repositoryPath string, content []byte) (string, error) {
	details := execshell.CommandDetails{
		Arguments:            []string{hashObjectSubcommandConstant, hashObjectWriteFlagConstant, hashObjectStdinFlagConstant},
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: manager.buildEnvironment(nil),
		StandardInput:        content,
	}
	result, executionError := manager.executor.ExecuteGit(executionContext, details)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(result.StandardOutput), nil
}

// ReadTreeIntoIndex populates a private index file with the provided tree-ish.
func (manager *RepositoryManager) ReadTreeIntoIndex(executionContext context.Context, repositoryPath string, indexFilePath string, treeish string) error {
	environment := map[string]string{indexFileEnvironmentKeyConstant: indexFilePath}
	_, executionError := manager.run(executionContext, repositoryPath, environment, readTreeSubcommandConstant, treeish)
	return executionError
}

// UpdateIndexEntry records a blob in a private index file at the provided path.
func (manager *RepositoryManager) UpdateIndexEntry(executionContext context.Context, repositoryPath string, indexFilePath string, fileMode string, blobIdentifier string, filePath string) error {
	environment := map[string]string{indexFileEnvironmentKeyConstant: indexFilePath}
	cacheInfo := strings.Join([]string{fileMode, blobIdentifier, filePath}, cacheInfoFieldSeparatorConstant)
	_, executionError := manager.run(executionContext, repositoryPath, environment, updateIndexSubcommandConstant, updateIndexAddFlagConstant, updateIndexCacheInfoFlagConstant, cacheInfo)
	return executionError
}

// WriteTreeFromIndex writes the tree described by a private index file and returns its identifier.
func (manager *RepositoryManager) WriteTreeFromIndex(executionContext context.Context, repositoryPath string, indexFilePath string) (string, error) {
	environment := map[string]string{indexFileEnvironmentKeyConstant: indexFilePath}
	result, executionError := manager.run(executionContext, repositoryPath, environment, writeTreeSubcommandConstant)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(result.StandardOutput), nil
}

// CommitTree creates a commit object for the provided tree and optional parent.
func (manager *RepositoryManager) CommitTree(executionContext context.Context, repositoryPath string, treeIdentifier string, parentIdentifier string, message string) (string, error) {
	arguments := []string{commitTreeSubcommandConstant, treeIdentifier}
	if len(strings.TrimSpace(parentIdentifier)) > 0 {
		arguments = append(arguments, commitTreeParentFlagConstant, parentIdentifier)
	}
	arguments = append(arguments, commitTreeMessageFlagConstant, message)

	environment := map[string]string{
		authorNameEnvironmentKeyConstant:     syntheticCommitterNameConstant,
		authorEmailEnvironmentKeyConstant:    syntheticCommitterEmailConstant,
		committerNameEnvironmentKeyConstant:  syntheticCommitterNameConstant,
		committerEmailEnvironmentKeyConstant: syntheticCommitterEmailConstant,
	}

	result, executionError := manager.run(executionContext, repositoryPath, environment, arguments...)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(result.StandardOutput), nil
}

// PushMirror force-pushes the complete local ref namespace to the named remote.
func (manager *RepositoryManager) PushMirror(executionContext context.Context, repositoryPath string, remoteName string) error {
	_, executionError := manager.run(executionContext, repositoryPath, nil, pushSubcommandConstant, mirrorFlagConstant, remoteName)
	return executionError
}

func (manager *RepositoryManager) run(executionContext context.Context, repositoryPath string, extraEnvironment map[string]string, arguments ...string) (execshell.ExecutionResult, error) {
	details := execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: manager.buildEnvironment(extraEnvironment),
	}
	return manager.executor.ExecuteGit(executionContext, details)
}

func (manager *RepositoryManager) buildEnvironment(extraEnvironment map[string]string) map[string]string {
	environment := map[string]string{terminalPromptEnvironmentKeyConstant: terminalPromptDisabledValueConstant}
	for environmentKey, environmentValue := range extraEnvironment {
		environment[environmentKey] = environmentValue
	}
	return environment
}

func splitOutputLines(output string) []string {
	lines := strings.Split(strings.TrimSpace(output), refListLineSeparatorConstant)
	collected := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)
		if len(trimmedLine) == 0 {
			continue
		}
		collected = append(collected, trimmedLine)
	}
	return collected
}
