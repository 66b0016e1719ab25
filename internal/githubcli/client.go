package githubcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/mirrors/internal/execshell"
)

const (
	apiSubcommandConstant                   = "api"
	methodFlagConstant                      = "-X"
	inputFlagConstant                       = "--input"
	stdinReferenceConstant                  = "-"
	acceptHeaderFlagConstant                = "-H"
	acceptHeaderValueConstant               = "Accept: application/vnd.github+json"
	httpMethodPostConstant                  = "POST"
	tokenEnvironmentKeyConstant             = "GH_TOKEN"
	ownerFieldNameConstant                  = "owner"
	repositoryNameFieldNameConstant         = "name"
	upstreamURLFieldNameConstant            = "upstream_url"
	requiredValueMessageConstant            = "value required"
	executorNotConfiguredMessageConstant    = "github cli executor not configured"
	repositoryEndpointTemplateConstant      = "repos/%s/%s"
	createRepositoryEndpointConstant        = "user/repos"
	repositoryDescriptionTemplateConstant   = "Mirror of %s"
	notFoundStatusFragmentConstant          = "404"
	notFoundMessageFragmentConstant         = "Not Found"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	payloadEncodingErrorTemplateConstant    = "%s payload encoding failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	repositoryExistsOperationNameConstant   = OperationName("RepositoryExists")
	createRepositoryOperationNameConstant   = OperationName("CreateRepository")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// RepositorySpecification describes a hosted mirror repository to create.
type RepositorySpecification struct {
	Name        string
	UpstreamURL string
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
	apiToken string
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// PayloadEncodingError indicates JSON encoding issues.
type PayloadEncodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the encoding failure.
func (encodingError PayloadEncodingError) Error() string {
	return fmt.Sprintf(payloadEncodingErrorTemplateConstant, encodingError.Operation, encodingError.Cause)
}

// Unwrap exposes the underlying error.
func (encodingError PayloadEncodingError) Unwrap() error {
	return encodingError.Cause
}

// NewClient constructs a GitHub CLI client forwarding apiToken to every invocation.
func NewClient(executor GitHubCommandExecutor, apiToken string) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor, apiToken: strings.TrimSpace(apiToken)}, nil
}

// RepositoryExists reports whether owner/name exists on the hosting platform.
//
// A failure whose diagnostics identify a missing repository resolves to
// (false, nil); every other failure is surfaced to the caller.
func (client *Client) RepositoryExists(executionContext context.Context, owner string, repositoryName string) (bool, error) {
	trimmedOwner := strings.TrimSpace(owner)
	if len(trimmedOwner) == 0 {
		return false, InvalidInputError{FieldName: ownerFieldNameConstant, Message: requiredValueMessageConstant}
	}

	trimmedRepositoryName := strings.TrimSpace(repositoryName)
	if len(trimmedRepositoryName) == 0 {
		return false, InvalidInputError{FieldName: repositoryNameFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			fmt.Sprintf(repositoryEndpointTemplateConstant, trimmedOwner, trimmedRepositoryName),
			acceptHeaderFlagConstant,
			acceptHeaderValueConstant,
		},
		EnvironmentVariables: client.buildEnvironment(),
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError == nil {
		return true, nil
	}

	if isRepositoryMissingFailure(executionError) {
		return false, nil
	}

	return false, OperationError{Operation: repositoryExistsOperationNameConstant, Cause: executionError}
}

// CreateRepository creates a public, non-initialized repository on the operator's account.
func (client *Client) CreateRepository(executionContext context.Context, specification RepositorySpecification) error {
	trimmedRepositoryName := strings.TrimSpace(specification.Name)
	if len(trimmedRepositoryName) == 0 {
		return InvalidInputError{FieldName: repositoryNameFieldNameConstant, Message: requiredValueMessageConstant}
	}

	trimmedUpstreamURL := strings.TrimSpace(specification.UpstreamURL)
	if len(trimmedUpstreamURL) == 0 {
		return InvalidInputError{FieldName: upstreamURLFieldNameConstant, Message: requiredValueMessageConstant}
	}

	payload := struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Private     bool   `json:"private"`
		AutoInit    bool   `json:"auto_init"`
	}{
		Name:        trimmedRepositoryName,
		Description: fmt.Sprintf(repositoryDescriptionTemplateConstant, trimmedUpstreamURL),
		Private:     false,
		AutoInit:    false,
	}

	payloadBytes, encodingError := json.Marshal(payload)
	if encodingError != nil {
		return PayloadEncodingError{Operation: createRepositoryOperationNameConstant, Cause: encodingError}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			createRepositoryEndpointConstant,
			methodFlagConstant,
			httpMethodPostConstant,
			inputFlagConstant,
			stdinReferenceConstant,
			acceptHeaderFlagConstant,
			acceptHeaderValueConstant,
		},
		EnvironmentVariables: client.buildEnvironment(),
		StandardInput:        payloadBytes,
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: createRepositoryOperationNameConstant, Cause: executionError}
	}

	return nil
}

func (client *Client) buildEnvironment() map[string]string {
	if len(client.apiToken) == 0 {
		return nil
	}
	return map[string]string{tokenEnvironmentKeyConstant: client.apiToken}
}

func isRepositoryMissingFailure(executionError error) bool {
	var commandFailure execshell.CommandFailedError
	if !errors.As(executionError, &commandFailure) {
		return false
	}
	diagnostics := commandFailure.Result.StandardError + commandFailure.Result.StandardOutput
	if strings.Contains(diagnostics, notFoundStatusFragmentConstant) {
		return true
	}
	return strings.Contains(diagnostics, notFoundMessageFragmentConstant)
}
