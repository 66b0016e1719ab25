package mirror

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/mirrors/internal/githubcli"
	"github.com/temirov/mirrors/internal/gitrepo"
)

const (
	createManagerMissingMessageConstant        = "create service requires a version control manager"
	createHostingMissingMessageConstant        = "create service requires a hosting API client"
	createConfiguratorMissingMessageConstant   = "create service requires a remote configurator"
	createAnnotatorMissingMessageConstant      = "create service requires an annotator"
	createSanitizerMissingMessageConstant      = "create service requires a ref sanitizer"
	upstreamURLRequiredMessageConstant         = "upstream URL must be provided"
	operatorOwnerRequiredMessageConstant       = "operator owner must be provided"
	selfMirrorMessageTemplateConstant          = "refusing to mirror %s: upstream owner matches operator identity %s"
	upstreamParseFailureTemplateConstant       = "failed to parse upstream URL: %w"
	originFormatFailureTemplateConstant        = "failed to construct origin URL: %w"
	hostedLookupFailureTemplateConstant        = "failed to query hosted repository: %w"
	hostedCreationFailureTemplateConstant      = "failed to create hosted repository: %w"
	mirrorCloneFailureTemplateConstant         = "failed to clone mirror: %w"
	mirrorFetchFailureTemplateConstant         = "failed to fetch existing mirror: %w"
	remoteConfigurationFailureTemplate         = "failed to configure mirror remotes: %w"
	annotationFailureTemplateConstant          = "failed to annotate mirror: %w"
	mirrorPushFailureTemplateConstant          = "failed to push mirror: %w"
	hostedRepositoryReusedDebugMessageConstant = "hosted repository already exists; reusing"
	existingCloneFetchedDebugMessageConstant   = "local mirror clone already exists; fetching"
	logFieldMirrorNameConstant                 = "mirror_name"
	logFieldUpstreamURLConstant                = "upstream_url"
)

// Create service construction errors.
var (
	ErrCreateManagerNotConfigured      = errors.New(createManagerMissingMessageConstant)
	ErrCreateHostingNotConfigured      = errors.New(createHostingMissingMessageConstant)
	ErrCreateConfiguratorNotConfigured = errors.New(createConfiguratorMissingMessageConstant)
	ErrCreateAnnotatorNotConfigured    = errors.New(createAnnotatorMissingMessageConstant)
	ErrCreateSanitizerNotConfigured    = errors.New(createSanitizerMissingMessageConstant)
	// ErrUpstreamURLRequired indicates the create invocation carried no upstream URL.
	ErrUpstreamURLRequired = errors.New(upstreamURLRequiredMessageConstant)
	// ErrOperatorOwnerRequired indicates the operator identity was not configured.
	ErrOperatorOwnerRequired = errors.New(operatorOwnerRequiredMessageConstant)
)

// SelfMirrorError indicates the upstream owner matches the operator identity.
type SelfMirrorError struct {
	UpstreamURL   string
	OperatorOwner string
}

// Error describes the rejected self-mirror attempt.
func (selfMirrorError SelfMirrorError) Error() string {
	return fmt.Sprintf(selfMirrorMessageTemplateConstant, selfMirrorError.UpstreamURL, selfMirrorError.OperatorOwner)
}

// CreateDependencies enumerates collaborators for the create workflow.
type CreateDependencies struct {
	Manager      VersionControl
	Hosting      HostingAPI
	Configurator *RemoteConfigurator
	Annotator    *Annotator
	Sanitizer    *RefSanitizer
	Logger       *zap.Logger
}

// CreateOptions configures a single create invocation.
type CreateOptions struct {
	UpstreamURL string
	MirrorName  string
	Operator    OperatorConfiguration
}

// CreateResult reports the outcome of a create invocation.
type CreateResult struct {
	MirrorName    string
	LocalPath     string
	OriginURL     string
	UpstreamURL   string
	HostedCreated bool
	Cloned        bool
}

// CreateService owns the Create workflow: Validate, Identity-Check,
// Host-Repo-Ensure, Local-Clone-Or-Fetch, Remote-Configure, Annotate,
// Sanitize, Push. Every state failure is fatal for the invocation; re-running
// is safe because each state is idempotent.
type CreateService struct {
	manager      VersionControl
	hosting      HostingAPI
	configurator *RemoteConfigurator
	annotator    *Annotator
	sanitizer    *RefSanitizer
	logger       *zap.Logger
}

// NewCreateService constructs a CreateService from the provided dependencies.
func NewCreateService(dependencies CreateDependencies) (*CreateService, error) {
	if dependencies.Manager == nil {
		return nil, ErrCreateManagerNotConfigured
	}
	if dependencies.Hosting == nil {
		return nil, ErrCreateHostingNotConfigured
	}
	if dependencies.Configurator == nil {
		return nil, ErrCreateConfiguratorNotConfigured
	}
	if dependencies.Annotator == nil {
		return nil, ErrCreateAnnotatorNotConfigured
	}
	if dependencies.Sanitizer == nil {
		return nil, ErrCreateSanitizerNotConfigured
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreateService{
		manager:      dependencies.Manager,
		hosting:      dependencies.Hosting,
		configurator: dependencies.Configurator,
		annotator:    dependencies.Annotator,
		sanitizer:    dependencies.Sanitizer,
		logger:       logger,
	}, nil
}

// Create establishes the local+hosted mirror pair for the provided upstream.
func (service *CreateService) Create(executionContext context.Context, options CreateOptions) (CreateResult, error) {
	trimmedUpstreamURL := strings.TrimSpace(options.UpstreamURL)
	if len(trimmedUpstreamURL) == 0 {
		return CreateResult{}, ErrUpstreamURLRequired
	}

	operator := options.Operator.Sanitize()
	if len(operator.Owner) == 0 {
		return CreateResult{}, ErrOperatorOwnerRequired
	}
	if len(operator.StoreRoot) == 0 {
		return CreateResult{}, ErrStoreRootRequired
	}

	parsedUpstream, parseError := gitrepo.ParseRemoteURL(trimmedUpstreamURL)
	if parseError != nil {
		return CreateResult{}, fmt.Errorf(upstreamParseFailureTemplateConstant, parseError)
	}

	if strings.EqualFold(parsedUpstream.Owner, operator.Owner) {
		return CreateResult{}, SelfMirrorError{UpstreamURL: trimmedUpstreamURL, OperatorOwner: operator.Owner}
	}

	mirrorName := strings.TrimSpace(options.MirrorName)
	if len(mirrorName) == 0 {
		mirrorName = parsedUpstream.Repository
	}

	originURL, formatError := gitrepo.FormatRemoteURL(gitrepo.RemoteURL{
		Protocol:   gitrepo.RemoteProtocolHTTPS,
		Host:       parsedUpstream.Host,
		Owner:      operator.Owner,
		Repository: mirrorName,
	})
	if formatError != nil {
		return CreateResult{}, fmt.Errorf(originFormatFailureTemplateConstant, formatError)
	}

	hostedExists, lookupError := service.hosting.RepositoryExists(executionContext, operator.Owner, mirrorName)
	if lookupError != nil {
		return CreateResult{}, fmt.Errorf(hostedLookupFailureTemplateConstant, lookupError)
	}

	hostedCreated := false
	if hostedExists {
		service.logger.Debug(hostedRepositoryReusedDebugMessageConstant,
			zap.String(logFieldMirrorNameConstant, mirrorName),
		)
	} else {
		creationError := service.hosting.CreateRepository(executionContext, githubcli.RepositorySpecification{
			Name:        mirrorName,
			UpstreamURL: trimmedUpstreamURL,
		})
		if creationError != nil {
			return CreateResult{}, fmt.Errorf(hostedCreationFailureTemplateConstant, creationError)
		}
		hostedCreated = true
	}

	localPath := filepath.Join(operator.StoreRoot, mirrorName)
	cloned := false
	if service.manager.CheckIsRepository(executionContext, localPath) {
		service.logger.Debug(existingCloneFetchedDebugMessageConstant,
			zap.String(logFieldMirrorNameConstant, mirrorName),
			zap.String(logFieldRepositoryPathConstant, localPath),
		)
		if fetchError := service.manager.FetchAllRemotes(executionContext, localPath); fetchError != nil {
			return CreateResult{}, fmt.Errorf(mirrorFetchFailureTemplateConstant, fetchError)
		}
	} else {
		if cloneError := service.manager.CloneMirror(executionContext, trimmedUpstreamURL, localPath); cloneError != nil {
			return CreateResult{}, fmt.Errorf(mirrorCloneFailureTemplateConstant, cloneError)
		}
		cloned = true
	}

	if configurationError := service.configurator.EnsureMirrorRemotes(executionContext, localPath, originURL, trimmedUpstreamURL); configurationError != nil {
		return CreateResult{}, fmt.Errorf(remoteConfigurationFailureTemplate, configurationError)
	}

	if _, annotationError := service.annotator.Annotate(executionContext, localPath); annotationError != nil {
		return CreateResult{}, fmt.Errorf(annotationFailureTemplateConstant, annotationError)
	}

	service.sanitizer.SanitizeRefs(executionContext, localPath)

	if pushError := service.manager.PushMirror(executionContext, localPath, OriginRemoteNameConstant); pushError != nil {
		return CreateResult{}, fmt.Errorf(mirrorPushFailureTemplateConstant, pushError)
	}

	return CreateResult{
		MirrorName:    mirrorName,
		LocalPath:     localPath,
		OriginURL:     originURL,
		UpstreamURL:   trimmedUpstreamURL,
		HostedCreated: hostedCreated,
		Cloned:        cloned,
	}, nil
}
