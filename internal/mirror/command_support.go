package mirror

import (
	"go.uber.org/zap"

	"github.com/temirov/mirrors/internal/execshell"
	"github.com/temirov/mirrors/internal/githubcli"
	"github.com/temirov/mirrors/internal/gitrepo"
	"github.com/temirov/mirrors/internal/ui"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// workflowServices bundles the collaborators shared by the mirror commands.
type workflowServices struct {
	manager      VersionControl
	configurator *RemoteConfigurator
	annotator    *Annotator
	sanitizer    *RefSanitizer
	resolver     *DefaultBranchResolver
}

// resolveCommandLogger falls back to a no-op logger when no provider is configured.
func resolveCommandLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// resolveShellExecutor builds the process-backed executor. Human-readable
// runs route command lifecycle output through the console event logger
// instead of structured zap entries.
func resolveShellExecutor(logger *zap.Logger, humanReadableLogging bool) (*execshell.ShellExecutor, error) {
	commandRunner := execshell.NewOSCommandRunner()

	if humanReadableLogging {
		shellExecutor, creationError := execshell.NewShellExecutor(zap.NewNop(), commandRunner, true)
		if creationError != nil {
			return nil, creationError
		}
		shellExecutor.SetCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
		return shellExecutor, nil
	}

	return execshell.NewShellExecutor(logger, commandRunner)
}

// resolveVersionControl returns the override when provided, otherwise a
// RepositoryManager over a freshly constructed shell executor.
func resolveVersionControl(override VersionControl, logger *zap.Logger, humanReadableLogging bool) (VersionControl, error) {
	if override != nil {
		return override, nil
	}

	shellExecutor, executorError := resolveShellExecutor(logger, humanReadableLogging)
	if executorError != nil {
		return nil, executorError
	}

	return gitrepo.NewRepositoryManager(shellExecutor)
}

// resolveHostingAPI returns the override when provided, otherwise a gh-backed client.
func resolveHostingAPI(override HostingAPI, logger *zap.Logger, humanReadableLogging bool, apiToken string) (HostingAPI, error) {
	if override != nil {
		return override, nil
	}

	shellExecutor, executorError := resolveShellExecutor(logger, humanReadableLogging)
	if executorError != nil {
		return nil, executorError
	}

	return githubcli.NewClient(shellExecutor, apiToken)
}

// buildWorkflowServices assembles the mirror collaborators around one manager.
func buildWorkflowServices(manager VersionControl, logger *zap.Logger) (workflowServices, error) {
	configurator, configuratorError := NewRemoteConfigurator(manager)
	if configuratorError != nil {
		return workflowServices{}, configuratorError
	}

	annotator, annotatorError := NewAnnotator(manager, logger)
	if annotatorError != nil {
		return workflowServices{}, annotatorError
	}

	sanitizer, sanitizerError := NewRefSanitizer(manager, logger)
	if sanitizerError != nil {
		return workflowServices{}, sanitizerError
	}

	resolver, resolverError := NewDefaultBranchResolver(manager, logger)
	if resolverError != nil {
		return workflowServices{}, resolverError
	}

	return workflowServices{
		manager:      manager,
		configurator: configurator,
		annotator:    annotator,
		sanitizer:    sanitizer,
		resolver:     resolver,
	}, nil
}
