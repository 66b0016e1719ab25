package mirror_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/mirrors/internal/githubcli"
	"github.com/temirov/mirrors/internal/mirror"
)

const createTestAPITokenConstant = "configured-token"

func testCommandConfiguration() mirror.CommandConfiguration {
	configuration := mirror.DefaultCommandConfiguration()
	configuration.Operator.Owner = createTestOperatorOwner
	configuration.Operator.APIToken = createTestAPITokenConstant
	configuration.Operator.StoreRoot = createTestStoreRootConstant
	return configuration
}

func TestCreateCommandMirrorsSingleUpstream(t *testing.T) {
	manager := newMirrorFake()
	hosting := &fakeHostingAPI{}

	builder := mirror.CreateCommandBuilder{
		ConfigurationProvider: testCommandConfiguration,
		Manager:               manager,
		Hosting:               hosting,
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetArgs([]string{createTestUpstreamURLConstant})

	require.NoError(t, command.ExecuteContext(context.Background()))
	require.Equal(t, "MIRRORED: widget (origin https://github.com/mirror-operator/widget.git)\n", outputBuffer.String())
	require.Len(t, hosting.createdSpecifications, 1)
}

func TestCreateCommandRequiresUpstreamOrManifest(t *testing.T) {
	builder := mirror.CreateCommandBuilder{
		ConfigurationProvider: testCommandConfiguration,
		Manager:               newMirrorFake(),
		Hosting:               &fakeHostingAPI{},
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SetArgs([]string{})

	executionError := command.ExecuteContext(context.Background())
	require.Error(t, executionError)
	require.Contains(t, executionError.Error(), "provide an upstream URL or --manifest")
}

func TestCreateCommandRejectsUpstreamCombinedWithManifest(t *testing.T) {
	builder := mirror.CreateCommandBuilder{
		ConfigurationProvider: testCommandConfiguration,
		Manager:               newMirrorFake(),
		Hosting:               &fakeHostingAPI{},
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SetArgs([]string{createTestUpstreamURLConstant, "--manifest", "mirrors.yaml"})

	executionError := command.ExecuteContext(context.Background())
	require.Error(t, executionError)
	require.Contains(t, executionError.Error(), "not both")
}

func TestCreateCommandRequiresAPIToken(t *testing.T) {
	t.Setenv("GH_TOKEN", "")

	configurationWithoutToken := func() mirror.CommandConfiguration {
		configuration := testCommandConfiguration()
		configuration.Operator.APIToken = ""
		return configuration
	}

	builder := mirror.CreateCommandBuilder{
		ConfigurationProvider: configurationWithoutToken,
		Manager:               newMirrorFake(),
		Hosting:               &fakeHostingAPI{},
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	command.SetOut(&bytes.Buffer{})
	command.SetErr(&bytes.Buffer{})
	command.SetArgs([]string{createTestUpstreamURLConstant})

	executionError := command.ExecuteContext(context.Background())
	require.Error(t, executionError)
	require.Contains(t, executionError.Error(), "operator API token must be provided")
}

func TestCreateCommandAcceptsEnvironmentToken(t *testing.T) {
	t.Setenv("GH_TOKEN", "environment-token")

	configurationWithoutToken := func() mirror.CommandConfiguration {
		configuration := testCommandConfiguration()
		configuration.Operator.APIToken = ""
		return configuration
	}

	hosting := &fakeHostingAPI{}
	builder := mirror.CreateCommandBuilder{
		ConfigurationProvider: configurationWithoutToken,
		Manager:               newMirrorFake(),
		Hosting:               hosting,
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	command.SetOut(&bytes.Buffer{})
	command.SetArgs([]string{createTestUpstreamURLConstant})

	require.NoError(t, command.ExecuteContext(context.Background()))
	require.Len(t, hosting.createdSpecifications, 1)
}

func TestCreateCommandManifestContinuesPastFailures(t *testing.T) {
	manifestPath := filepath.Join(t.TempDir(), "mirrors.yaml")
	manifestContent := "" +
		"mirrors:\n" +
		"  - upstream: https://github.com/source-owner/widget.git\n" +
		"  - upstream: https://github.com/source-owner/gadget.git\n"
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifestContent), 0o644))

	manager := newMirrorFake()
	hosting := &fakeHostingAPI{
		createFunc: func(specification githubcli.RepositorySpecification) error {
			if specification.Name == "widget" {
				return errors.New("quota exceeded")
			}
			return nil
		},
	}

	builder := mirror.CreateCommandBuilder{
		ConfigurationProvider: testCommandConfiguration,
		Manager:               manager,
		Hosting:               hosting,
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(&bytes.Buffer{})
	command.SetArgs([]string{"--manifest", manifestPath})

	executionError := command.ExecuteContext(context.Background())
	require.Error(t, executionError)
	require.Contains(t, executionError.Error(), "1 of 2 mirrors failed")

	commandOutput := outputBuffer.String()
	require.Contains(t, commandOutput, "FAILED: widget")
	require.Contains(t, commandOutput, "MIRRORED: gadget (origin https://github.com/mirror-operator/gadget.git)")
	require.Contains(t, commandOutput, "CREATE SUMMARY: total=2 succeeded=1 failed=1")
}

func TestCreateCommandFlagOverridesConfiguration(t *testing.T) {
	manager := newMirrorFake()
	hosting := &fakeHostingAPI{}

	builder := mirror.CreateCommandBuilder{
		ConfigurationProvider: testCommandConfiguration,
		Manager:               manager,
		Hosting:               hosting,
	}
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetArgs([]string{
		createTestUpstreamURLConstant,
		"--name", "widget-mirror",
		"--owner", "alternate-operator",
		"--store-root", "/var/mirrors",
	})

	require.NoError(t, command.ExecuteContext(context.Background()))
	require.Equal(t, "MIRRORED: widget-mirror (origin https://github.com/alternate-operator/widget-mirror.git)\n", outputBuffer.String())
}
