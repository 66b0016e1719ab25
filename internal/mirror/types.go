package mirror

import (
	"context"
	"strings"
	"time"

	"github.com/temirov/mirrors/internal/githubcli"
)

const (
	// OriginRemoteNameConstant names the pushable remote pointing at the hosted mirror.
	OriginRemoteNameConstant = "origin"
	// UpstreamRemoteNameConstant names the fetch-only remote pointing at the source repository.
	UpstreamRemoteNameConstant = "upstream"
	// PushBlockSentinelConstant is the push URL configured on upstream so pushes always fail.
	PushBlockSentinelConstant = "DISABLED"
	// ReservedRefPrefixConstant is the ref namespace stripped before every mirror push.
	ReservedRefPrefixConstant = "refs/pull/"
)

// MirrorEntry identifies one mirrored repository in the store.
type MirrorEntry struct {
	Name        string
	LocalPath   string
	OriginURL   string
	UpstreamURL string
}

// OperatorConfiguration carries the operator identity resolved once at process start.
type OperatorConfiguration struct {
	Owner     string `mapstructure:"owner"`
	APIToken  string `mapstructure:"api_token"`
	StoreRoot string `mapstructure:"store_root"`
}

// Sanitize trims whitespace from every operator field.
func (configuration OperatorConfiguration) Sanitize() OperatorConfiguration {
	sanitized := configuration
	sanitized.Owner = strings.TrimSpace(configuration.Owner)
	sanitized.APIToken = strings.TrimSpace(configuration.APIToken)
	sanitized.StoreRoot = strings.TrimSpace(configuration.StoreRoot)
	return sanitized
}

// VersionControl abstracts the git operations the mirror workflows depend on.
type VersionControl interface {
	CheckIsRepository(executionContext context.Context, repositoryPath string) bool
	CloneMirror(executionContext context.Context, sourceURL string, targetPath string) error
	FetchRemote(executionContext context.Context, repositoryPath string, remoteName string) error
	FetchAllRemotes(executionContext context.Context, repositoryPath string) error
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
	SetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error
	SetRemotePushURL(executionContext context.Context, repositoryPath string, remoteName string, pushURL string) error
	AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error
	AddMirrorFetchRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error
	ListRemotes(executionContext context.Context, repositoryPath string) ([]string, error)
	ListRefs(executionContext context.Context, repositoryPath string, refPrefix string) ([]string, error)
	DeleteRef(executionContext context.Context, repositoryPath string, refName string) error
	UpdateRef(executionContext context.Context, repositoryPath string, refName string, commitIdentifier string) error
	ReadSymbolicHead(executionContext context.Context, repositoryPath string) (string, error)
	SetSymbolicHead(executionContext context.Context, repositoryPath string, refName string) error
	QueryRemoteHead(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
	ResolveCommit(executionContext context.Context, repositoryPath string, revision string) (string, error)
	ListTreeEntries(executionContext context.Context, repositoryPath string, treeish string) ([]string, error)
	ReadTreeFile(executionContext context.Context, repositoryPath string, treeish string, filePath string) (string, error)
	WriteBlob(executionContext context.Context, repositoryPath string, content []byte) (string, error)
	ReadTreeIntoIndex(executionContext context.Context, repositoryPath string, indexFilePath string, treeish string) error
	UpdateIndexEntry(executionContext context.Context, repositoryPath string, indexFilePath string, fileMode string, blobIdentifier string, filePath string) error
	WriteTreeFromIndex(executionContext context.Context, repositoryPath string, indexFilePath string) (string, error)
	CommitTree(executionContext context.Context, repositoryPath string, treeIdentifier string, parentIdentifier string, message string) (string, error)
	PushMirror(executionContext context.Context, repositoryPath string, remoteName string) error
}

// HostingAPI abstracts hosted repository management on the personal account.
type HostingAPI interface {
	RepositoryExists(executionContext context.Context, owner string, repositoryName string) (bool, error)
	CreateRepository(executionContext context.Context, specification githubcli.RepositorySpecification) error
}

// Pauser inserts pauses between batch entries.
type Pauser interface {
	Pause(duration time.Duration)
}

// SleepingPauser pauses using the wall clock.
type SleepingPauser struct{}

// Pause blocks for the requested duration.
func (SleepingPauser) Pause(duration time.Duration) {
	time.Sleep(duration)
}
