package mirror

import "strings"

const (
	operatorConfigurationKeyConstant  = "operator"
	operatorOwnerKeyConstant          = "owner"
	operatorAPITokenKeyConstant       = "api_token"
	operatorStoreRootKeyConstant      = "store_root"
	createConfigurationKeyConstant    = "create"
	createManifestKeyConstant         = "manifest"
	syncConfigurationKeyConstant      = "sync"
	syncPauseSecondsKeyConstant       = "pause_seconds"
	syncFailOnErrorKeyConstant        = "fail_on_error"
	configurationKeySeparatorConstant = "."
	defaultSyncPauseSecondsConstant   = 2
	defaultStoreRootConstant          = "~/mirrors"
)

// CommandConfiguration captures the mirror command configuration sections.
type CommandConfiguration struct {
	Operator OperatorConfiguration      `mapstructure:"operator"`
	Create   CreateCommandConfiguration `mapstructure:"create"`
	Sync     SyncCommandConfiguration   `mapstructure:"sync"`
}

// CreateCommandConfiguration describes configuration values for mirror-create.
type CreateCommandConfiguration struct {
	ManifestPath string `mapstructure:"manifest"`
}

// SyncCommandConfiguration describes configuration values for mirror-sync.
type SyncCommandConfiguration struct {
	PauseSeconds int  `mapstructure:"pause_seconds"`
	FailOnError  bool `mapstructure:"fail_on_error"`
}

// DefaultCommandConfiguration returns baseline configuration values for the mirror commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Operator: OperatorConfiguration{
			Owner:     "",
			APIToken:  "",
			StoreRoot: defaultStoreRootConstant,
		},
		Create: CreateCommandConfiguration{
			ManifestPath: "",
		},
		Sync: SyncCommandConfiguration{
			PauseSeconds: defaultSyncPauseSecondsConstant,
			FailOnError:  false,
		},
	}
}

// DefaultConfigurationValues produces Viper defaults for the mirror commands.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKey(rootKey, operatorConfigurationKeyConstant, operatorOwnerKeyConstant):     defaults.Operator.Owner,
		configurationKey(rootKey, operatorConfigurationKeyConstant, operatorAPITokenKeyConstant):  defaults.Operator.APIToken,
		configurationKey(rootKey, operatorConfigurationKeyConstant, operatorStoreRootKeyConstant): defaults.Operator.StoreRoot,
		configurationKey(rootKey, createConfigurationKeyConstant, createManifestKeyConstant):      defaults.Create.ManifestPath,
		configurationKey(rootKey, syncConfigurationKeyConstant, syncPauseSecondsKeyConstant):      defaults.Sync.PauseSeconds,
		configurationKey(rootKey, syncConfigurationKeyConstant, syncFailOnErrorKeyConstant):       defaults.Sync.FailOnError,
	}
}

// Sanitize trims configuration values without applying implicit defaults.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Operator = configuration.Operator.Sanitize()
	sanitized.Create.ManifestPath = strings.TrimSpace(configuration.Create.ManifestPath)
	return sanitized
}

func configurationKey(segments ...string) string {
	return strings.Join(segments, configurationKeySeparatorConstant)
}
