package mirror

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/temirov/mirrors/internal/utils"
	pathutils "github.com/temirov/mirrors/internal/utils/path"
)

const (
	syncCommandUseConstant   = "mirror-sync"
	syncCommandShortConstant = "Synchronize every mirror in the store against its upstream"
	syncCommandLongConstant  = "mirror-sync walks the mirror store, fetches each mirror's upstream, " +
		"re-asserts the origin/upstream remote topology and the upstream push block, " +
		"repoints HEAD at the upstream default branch, refreshes the mirror notice, " +
		"strips reserved pull-request refs, and mirror-pushes to origin. Per-entry " +
		"failures are reported and the batch continues."
	failOnErrorFlagNameConstant         = "fail-on-error"
	failOnErrorFlagDescriptionConstant  = "exit non-zero when any mirror fails to sync"
	pauseSecondsFlagNameConstant        = "pause-seconds"
	pauseSecondsFlagDescriptionConstant = "seconds to pause between store entries"
	syncSummaryTemplateConstant         = "SYNC SUMMARY: total=%d succeeded=%d failed=%d\n"
	syncFailureTemplateConstant         = "%d of %d mirrors failed to sync"
)

// SyncCommandBuilder assembles the mirror-sync command.
type SyncCommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	Manager                      VersionControl
	Store                        StoreEnumerator
	Pauser                       Pauser
}

// Build constructs the mirror-sync cobra command.
func (builder *SyncCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   syncCommandUseConstant,
		Short: syncCommandShortConstant,
		Long:  syncCommandLongConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(ownerFlagNameConstant, "", ownerFlagDescriptionConstant)
	command.Flags().String(storeRootFlagNameConstant, "", storeRootFlagDescriptionConstant)
	command.Flags().Bool(failOnErrorFlagNameConstant, false, failOnErrorFlagDescriptionConstant)
	command.Flags().Int(pauseSecondsFlagNameConstant, 0, pauseSecondsFlagDescriptionConstant)

	return command, nil
}

func (builder *SyncCommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()
	logger := resolveCommandLogger(builder.LoggerProvider)
	humanReadableLogging := builder.resolveHumanReadableLogging()

	operator := configuration.Operator
	if ownerFlagValue, _ := command.Flags().GetString(ownerFlagNameConstant); len(strings.TrimSpace(ownerFlagValue)) > 0 {
		operator.Owner = ownerFlagValue
	}
	if storeRootFlagValue, _ := command.Flags().GetString(storeRootFlagNameConstant); len(strings.TrimSpace(storeRootFlagValue)) > 0 {
		operator.StoreRoot = storeRootFlagValue
	}
	operator = operator.Sanitize()
	operator.StoreRoot = pathutils.NewHomeExpander().Expand(operator.StoreRoot)

	failOnError := configuration.Sync.FailOnError
	if command.Flags().Changed(failOnErrorFlagNameConstant) {
		failOnError, _ = command.Flags().GetBool(failOnErrorFlagNameConstant)
	}

	pauseSeconds := configuration.Sync.PauseSeconds
	if command.Flags().Changed(pauseSecondsFlagNameConstant) {
		pauseSeconds, _ = command.Flags().GetInt(pauseSecondsFlagNameConstant)
	}

	manager, managerError := resolveVersionControl(builder.Manager, logger, humanReadableLogging)
	if managerError != nil {
		return managerError
	}

	services, servicesError := buildWorkflowServices(manager, logger)
	if servicesError != nil {
		return servicesError
	}

	store := builder.Store
	if store == nil {
		store = NewFilesystemStore()
	}

	syncService, creationError := NewSyncService(SyncDependencies{
		Manager:      services.manager,
		Configurator: services.configurator,
		Sanitizer:    services.sanitizer,
		Annotator:    services.annotator,
		Resolver:     services.resolver,
		Store:        store,
		Pauser:       builder.Pauser,
		Logger:       logger,
	})
	if creationError != nil {
		return creationError
	}

	outcome, syncError := syncService.SyncAll(command.Context(), SyncOptions{
		Operator:      operator,
		PauseDuration: time.Duration(pauseSeconds) * time.Second,
	})
	if syncError != nil {
		return syncError
	}

	summaryWriter := utils.NewFlushingWriter(command.OutOrStdout())
	fmt.Fprintf(summaryWriter, syncSummaryTemplateConstant, outcome.Total, outcome.Succeeded, outcome.Failed)

	if failOnError && outcome.Failed > 0 {
		return fmt.Errorf(syncFailureTemplateConstant, outcome.Failed, outcome.Total)
	}
	return nil
}

func (builder *SyncCommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *SyncCommandBuilder) resolveHumanReadableLogging() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}
	return builder.HumanReadableLoggingProvider()
}
