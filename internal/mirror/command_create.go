package mirror

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	pathutils "github.com/temirov/mirrors/internal/utils/path"
)

const (
	createCommandUseConstant   = "mirror-create [upstream-url]"
	createCommandShortConstant = "Create a hosted mirror of an upstream repository"
	createCommandLongConstant  = "mirror-create provisions a hosted repository under the operator account, " +
		"creates or refreshes the local mirror clone, configures the origin/upstream " +
		"remote pair with a blocked upstream push URL, annotates the README with a " +
		"mirror notice, strips reserved pull-request refs, and mirror-pushes the result.\n\n" +
		"A single upstream URL is mirrored directly; --manifest mirrors every entry of " +
		"a YAML manifest, continuing past per-entry failures.\n\n" +
		"Hosting API calls authenticate with the configured operator API token, " +
		"falling back to the GH_TOKEN environment variable; one of the two must be set."
	createNameFlagNameConstant        = "name"
	createNameFlagDescriptionConstant = "mirror repository name (defaults to the upstream repository name)"
	manifestFlagNameConstant          = "manifest"
	manifestFlagDescriptionConstant   = "path to a YAML manifest listing mirrors to create"
	ownerFlagNameConstant             = "owner"
	ownerFlagDescriptionConstant      = "operator account owning the mirrors"
	storeRootFlagNameConstant         = "store-root"
	storeRootFlagDescriptionConstant  = "directory holding the local mirror clones"
	upstreamArgumentMissingMessage    = "provide an upstream URL or --manifest"
	upstreamArgumentConflictMessage   = "provide either an upstream URL or --manifest, not both"
	apiTokenEnvironmentKeyConstant    = "GH_TOKEN"
	apiTokenMissingMessage            = "operator API token must be provided (set mirror.operator.api_token or GH_TOKEN)"
	mirrorCreatedTemplateConstant     = "MIRRORED: %s (origin %s)\n"
	mirrorFailedTemplateConstant      = "FAILED: %s (%v)\n"
	createSummaryTemplateConstant     = "CREATE SUMMARY: total=%d succeeded=%d failed=%d\n"
	bulkCreateFailureTemplateConstant = "%d of %d mirrors failed"
)

// CreateCommandBuilder assembles the mirror-create command.
type CreateCommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	Manager                      VersionControl
	Hosting                      HostingAPI
}

// Build constructs the mirror-create cobra command.
func (builder *CreateCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   createCommandUseConstant,
		Short: createCommandShortConstant,
		Long:  createCommandLongConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	command.Flags().String(createNameFlagNameConstant, "", createNameFlagDescriptionConstant)
	command.Flags().String(manifestFlagNameConstant, "", manifestFlagDescriptionConstant)
	command.Flags().String(ownerFlagNameConstant, "", ownerFlagDescriptionConstant)
	command.Flags().String(storeRootFlagNameConstant, "", storeRootFlagDescriptionConstant)

	return command, nil
}

func (builder *CreateCommandBuilder) run(command *cobra.Command, arguments []string) error {
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

	manifestPath := configuration.Create.ManifestPath
	if manifestFlagValue, _ := command.Flags().GetString(manifestFlagNameConstant); len(strings.TrimSpace(manifestFlagValue)) > 0 {
		manifestPath = manifestFlagValue
	}
	manifestPath = strings.TrimSpace(manifestPath)

	if len(manifestPath) == 0 && len(arguments) == 0 {
		return errors.New(upstreamArgumentMissingMessage)
	}
	if len(manifestPath) > 0 && len(arguments) > 0 {
		return errors.New(upstreamArgumentConflictMessage)
	}

	if len(operator.APIToken) == 0 {
		operator.APIToken = strings.TrimSpace(os.Getenv(apiTokenEnvironmentKeyConstant))
	}
	if len(operator.APIToken) == 0 {
		return errors.New(apiTokenMissingMessage)
	}

	manager, managerError := resolveVersionControl(builder.Manager, logger, humanReadableLogging)
	if managerError != nil {
		return managerError
	}

	hosting, hostingError := resolveHostingAPI(builder.Hosting, logger, humanReadableLogging, operator.APIToken)
	if hostingError != nil {
		return hostingError
	}

	services, servicesError := buildWorkflowServices(manager, logger)
	if servicesError != nil {
		return servicesError
	}

	createService, creationError := NewCreateService(CreateDependencies{
		Manager:      services.manager,
		Hosting:      hosting,
		Configurator: services.configurator,
		Annotator:    services.annotator,
		Sanitizer:    services.sanitizer,
		Logger:       logger,
	})
	if creationError != nil {
		return creationError
	}

	if len(manifestPath) > 0 {
		return builder.runManifest(command, createService, operator, manifestPath)
	}

	mirrorNameFlagValue, _ := command.Flags().GetString(createNameFlagNameConstant)
	createResult, createError := createService.Create(command.Context(), CreateOptions{
		UpstreamURL: arguments[0],
		MirrorName:  mirrorNameFlagValue,
		Operator:    operator,
	})
	if createError != nil {
		return createError
	}

	fmt.Fprintf(command.OutOrStdout(), mirrorCreatedTemplateConstant, createResult.MirrorName, createResult.OriginURL)
	return nil
}

// runManifest mirrors every manifest entry, continuing past failures and
// reporting a summary. Any failed entry makes the command exit non-zero.
func (builder *CreateCommandBuilder) runManifest(command *cobra.Command, createService *CreateService, operator OperatorConfiguration, manifestPath string) error {
	manifest, manifestError := LoadManifest(manifestPath)
	if manifestError != nil {
		return manifestError
	}

	succeededCount := 0
	failedCount := 0
	for _, manifestEntry := range manifest.Mirrors {
		createResult, createError := createService.Create(command.Context(), CreateOptions{
			UpstreamURL: manifestEntry.Upstream,
			MirrorName:  manifestEntry.Name,
			Operator:    operator,
		})
		if createError != nil {
			failedCount++
			fmt.Fprintf(command.OutOrStdout(), mirrorFailedTemplateConstant, manifestEntry.Name, createError)
			continue
		}
		succeededCount++
		fmt.Fprintf(command.OutOrStdout(), mirrorCreatedTemplateConstant, createResult.MirrorName, createResult.OriginURL)
	}

	fmt.Fprintf(command.OutOrStdout(), createSummaryTemplateConstant, len(manifest.Mirrors), succeededCount, failedCount)
	if failedCount > 0 {
		return fmt.Errorf(bulkCreateFailureTemplateConstant, failedCount, len(manifest.Mirrors))
	}
	return nil
}

func (builder *CreateCommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CreateCommandBuilder) resolveHumanReadableLogging() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}
	return builder.HumanReadableLoggingProvider()
}
