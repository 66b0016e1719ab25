package mirror

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/mirrors/internal/gitrepo"
)

const (
	syncManagerMissingMessageConstant       = "sync service requires a version control manager"
	syncConfiguratorMissingMessageConstant  = "sync service requires a remote configurator"
	syncSanitizerMissingMessageConstant     = "sync service requires a ref sanitizer"
	syncAnnotatorMissingMessageConstant     = "sync service requires an annotator"
	syncResolverMissingMessageConstant      = "sync service requires a default branch resolver"
	syncStoreMissingMessageConstant         = "sync service requires a store enumerator"
	storeEnumerationFailureTemplateConstant = "failed to enumerate mirror store: %w"
	notRepositoryWarningMessageConstant     = "skipping entry: not a git repository"
	noUpstreamWarningMessageConstant        = "skipping entry: no upstream remote"
	entrySyncFailedWarningMessageConstant   = "mirror sync failed"
	entrySyncedDebugMessageConstant         = "mirror synced"
	upstreamFetchFailureTemplateConstant    = "failed to fetch upstream: %w"
	headRepointFailureTemplateConstant      = "failed to repoint HEAD to %s: %w"
	syncAnnotationFailureTemplateConstant   = "failed to annotate: %w"
	syncPushFailureTemplateConstant         = "failed to push mirror: %w"
	branchRefTemplateConstant               = "refs/heads/%s"
	logFieldEntryNameConstant               = "entry_name"
	// DefaultSyncPauseConstant is the fixed pause inserted between store entries.
	DefaultSyncPauseConstant = 2 * time.Second
)

// Sync service construction errors.
var (
	ErrSyncManagerNotConfigured      = errors.New(syncManagerMissingMessageConstant)
	ErrSyncConfiguratorNotConfigured = errors.New(syncConfiguratorMissingMessageConstant)
	ErrSyncSanitizerNotConfigured    = errors.New(syncSanitizerMissingMessageConstant)
	ErrSyncAnnotatorNotConfigured    = errors.New(syncAnnotatorMissingMessageConstant)
	ErrSyncResolverNotConfigured     = errors.New(syncResolverMissingMessageConstant)
	ErrSyncStoreNotConfigured        = errors.New(syncStoreMissingMessageConstant)
)

// SyncOutcome aggregates per-entry results across a Sync-All run.
// Skipped entries count toward Total only.
type SyncOutcome struct {
	Total     int
	Succeeded int
	Failed    int
}

// SyncDependencies enumerates collaborators for the sync workflow.
type SyncDependencies struct {
	Manager      VersionControl
	Configurator *RemoteConfigurator
	Sanitizer    *RefSanitizer
	Annotator    *Annotator
	Resolver     *DefaultBranchResolver
	Store        StoreEnumerator
	Pauser       Pauser
	Logger       *zap.Logger
}

// SyncOptions configures a Sync-All invocation.
type SyncOptions struct {
	Operator      OperatorConfiguration
	PauseDuration time.Duration
}

// SyncService owns the Sync-All workflow: every store entry is fetched,
// repointed, annotated, sanitized, and mirror-pushed; per-entry failures are
// recorded and the batch continues.
type SyncService struct {
	manager      VersionControl
	configurator *RemoteConfigurator
	sanitizer    *RefSanitizer
	annotator    *Annotator
	resolver     *DefaultBranchResolver
	store        StoreEnumerator
	pauser       Pauser
	logger       *zap.Logger
}

// NewSyncService constructs a SyncService from the provided dependencies.
func NewSyncService(dependencies SyncDependencies) (*SyncService, error) {
	if dependencies.Manager == nil {
		return nil, ErrSyncManagerNotConfigured
	}
	if dependencies.Configurator == nil {
		return nil, ErrSyncConfiguratorNotConfigured
	}
	if dependencies.Sanitizer == nil {
		return nil, ErrSyncSanitizerNotConfigured
	}
	if dependencies.Annotator == nil {
		return nil, ErrSyncAnnotatorNotConfigured
	}
	if dependencies.Resolver == nil {
		return nil, ErrSyncResolverNotConfigured
	}
	if dependencies.Store == nil {
		return nil, ErrSyncStoreNotConfigured
	}
	pauser := dependencies.Pauser
	if pauser == nil {
		pauser = SleepingPauser{}
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		manager:      dependencies.Manager,
		configurator: dependencies.Configurator,
		sanitizer:    dependencies.Sanitizer,
		annotator:    dependencies.Annotator,
		resolver:     dependencies.Resolver,
		store:        dependencies.Store,
		pauser:       pauser,
		logger:       logger,
	}, nil
}

// SyncAll reconciles every mirror in the store against its upstream.
// A missing or invalid store root is a fatal precondition failure; everything
// past enumeration degrades to per-entry outcomes.
func (service *SyncService) SyncAll(executionContext context.Context, options SyncOptions) (SyncOutcome, error) {
	operator := options.Operator.Sanitize()
	if len(operator.StoreRoot) == 0 {
		return SyncOutcome{}, ErrStoreRootRequired
	}

	entryNames, enumerationError := service.store.EnumerateEntries(operator.StoreRoot)
	if enumerationError != nil {
		return SyncOutcome{}, fmt.Errorf(storeEnumerationFailureTemplateConstant, enumerationError)
	}

	pauseDuration := options.PauseDuration
	if pauseDuration <= 0 {
		pauseDuration = DefaultSyncPauseConstant
	}

	outcome := SyncOutcome{Total: len(entryNames)}
	for entryIndex, entryName := range entryNames {
		if entryIndex > 0 {
			service.pauser.Pause(pauseDuration)
		}

		entryPath := filepath.Join(operator.StoreRoot, entryName)

		if !service.manager.CheckIsRepository(executionContext, entryPath) {
			service.logger.Warn(notRepositoryWarningMessageConstant,
				zap.String(logFieldEntryNameConstant, entryName),
				zap.String(logFieldRepositoryPathConstant, entryPath),
			)
			continue
		}

		upstreamURL, upstreamError := service.manager.GetRemoteURL(executionContext, entryPath, UpstreamRemoteNameConstant)
		if upstreamError != nil {
			service.logger.Warn(noUpstreamWarningMessageConstant,
				zap.String(logFieldEntryNameConstant, entryName),
				zap.String(logFieldRepositoryPathConstant, entryPath),
			)
			continue
		}

		syncError := service.syncEntry(executionContext, operator, entryName, entryPath, upstreamURL)
		if syncError != nil {
			outcome.Failed++
			service.logger.Warn(entrySyncFailedWarningMessageConstant,
				zap.String(logFieldEntryNameConstant, entryName),
				zap.String(logFieldRepositoryPathConstant, entryPath),
				zap.Error(syncError),
			)
			continue
		}

		outcome.Succeeded++
		service.logger.Debug(entrySyncedDebugMessageConstant,
			zap.String(logFieldEntryNameConstant, entryName),
		)
	}

	return outcome, nil
}

func (service *SyncService) syncEntry(executionContext context.Context, operator OperatorConfiguration, entryName string, entryPath string, upstreamURL string) error {
	if fetchError := service.manager.FetchRemote(executionContext, entryPath, UpstreamRemoteNameConstant); fetchError != nil {
		return fmt.Errorf(upstreamFetchFailureTemplateConstant, fetchError)
	}

	service.reassertRemotes(executionContext, operator, entryName, entryPath, upstreamURL)

	defaultBranch := service.resolver.Resolve(executionContext, entryPath, UpstreamRemoteNameConstant)
	branchReference := fmt.Sprintf(branchRefTemplateConstant, defaultBranch)
	if repointError := service.manager.SetSymbolicHead(executionContext, entryPath, branchReference); repointError != nil {
		return fmt.Errorf(headRepointFailureTemplateConstant, branchReference, repointError)
	}

	if _, annotationError := service.annotator.Annotate(executionContext, entryPath); annotationError != nil {
		return fmt.Errorf(syncAnnotationFailureTemplateConstant, annotationError)
	}

	service.sanitizer.SanitizeRefs(executionContext, entryPath)

	if pushError := service.manager.PushMirror(executionContext, entryPath, OriginRemoteNameConstant); pushError != nil {
		return fmt.Errorf(syncPushFailureTemplateConstant, pushError)
	}

	return nil
}

// reassertRemotes restores the full two-remote topology when the operator
// identity allows reconstructing the origin URL, and always restores the
// upstream push block. Remote repair is best-effort during sync; the
// subsequent push surfaces any remaining misconfiguration.
func (service *SyncService) reassertRemotes(executionContext context.Context, operator OperatorConfiguration, entryName string, entryPath string, upstreamURL string) {
	parsedUpstream, parseError := gitrepo.ParseRemoteURL(upstreamURL)
	if parseError == nil && len(operator.Owner) > 0 {
		originURL, formatError := gitrepo.FormatRemoteURL(gitrepo.RemoteURL{
			Protocol:   gitrepo.RemoteProtocolHTTPS,
			Host:       parsedUpstream.Host,
			Owner:      operator.Owner,
			Repository: entryName,
		})
		if formatError == nil {
			if configurationError := service.configurator.EnsureMirrorRemotes(executionContext, entryPath, originURL, upstreamURL); configurationError == nil {
				return
			}
		}
	}

	_ = service.configurator.EnsurePushBlock(executionContext, entryPath)
}
