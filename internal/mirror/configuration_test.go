package mirror_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/mirrors/internal/mirror"
)

func TestDefaultConfigurationValuesCoverEverySection(t *testing.T) {
	defaults := mirror.DefaultConfigurationValues("mirror")

	require.Equal(t, "", defaults["mirror.operator.owner"])
	require.Equal(t, "", defaults["mirror.operator.api_token"])
	require.Equal(t, "~/mirrors", defaults["mirror.operator.store_root"])
	require.Equal(t, "", defaults["mirror.create.manifest"])
	require.Equal(t, 2, defaults["mirror.sync.pause_seconds"])
	require.Equal(t, false, defaults["mirror.sync.fail_on_error"])
}

func TestCommandConfigurationSanitizeTrimsValues(t *testing.T) {
	configuration := mirror.CommandConfiguration{
		Operator: mirror.OperatorConfiguration{
			Owner:     "  mirror-operator  ",
			APIToken:  " token \n",
			StoreRoot: " /srv/mirrors ",
		},
		Create: mirror.CreateCommandConfiguration{ManifestPath: " mirrors.yaml "},
	}

	sanitized := configuration.Sanitize()

	require.Equal(t, "mirror-operator", sanitized.Operator.Owner)
	require.Equal(t, "token", sanitized.Operator.APIToken)
	require.Equal(t, "/srv/mirrors", sanitized.Operator.StoreRoot)
	require.Equal(t, "mirrors.yaml", sanitized.Create.ManifestPath)
}
