package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitCloneSubcommandNameConstant       = "clone"
	gitMirrorFlagConstant                = "--mirror"
	gitFetchSubcommandNameConstant       = "fetch"
	gitPushSubcommandNameConstant        = "push"
	gitRemoteSubcommandNameConstant      = "remote"
	gitRemoteGetURLSubcommandConstant    = "get-url"
	gitRemoteSetURLSubcommandConstant    = "set-url"
	gitRemoteAddSubcommandConstant       = "add"
	gitRemotePushFlagConstant            = "--push"
	gitLSRemoteSubcommandNameConstant    = "ls-remote"
	gitSymrefFlagConstant                = "--symref"
	gitSymbolicRefSubcommandNameConstant = "symbolic-ref"
	gitUpdateRefSubcommandNameConstant   = "update-ref"
	gitDeleteRefFlagConstant             = "-d"
)

const (
	gitCloneMirrorStartTemplateConstant          = "Creating mirror clone of %s at %s"
	gitCloneMirrorSuccessTemplateConstant        = "Created mirror clone of %s at %s"
	gitCloneMirrorFailureTemplateConstant        = "Failed to create mirror clone of %s at %s (exit code %d%s)"
	gitCloneMirrorExecutionFailureTemplate       = "Unable to create mirror clone of %s at %s: %s"
	gitFetchStartTemplateConstant                = "Fetching %s in %s"
	gitFetchSuccessTemplateConstant              = "Fetched %s in %s"
	gitFetchFailureTemplateConstant              = "Failed to fetch %s in %s (exit code %d%s)"
	gitFetchExecutionFailureTemplateConstant     = "Unable to fetch %s in %s: %s"
	gitFetchAllRemotesLabelConstant              = "all remotes"
	gitPushMirrorStartTemplateConstant           = "Mirror-pushing to %s from %s"
	gitPushMirrorSuccessTemplateConstant         = "Mirror-pushed to %s from %s"
	gitPushMirrorFailureTemplateConstant         = "Failed to mirror-push to %s from %s (exit code %d%s)"
	gitPushMirrorExecutionFailureTemplate        = "Unable to mirror-push to %s from %s: %s"
	gitRemoteLookupStartTemplateConstant         = "Checking %s remote for %s"
	gitRemoteLookupSuccessTemplateConstant       = "%s remote for %s points to %s"
	gitRemoteLookupFailureTemplateConstant       = "Failed to read %s remote for %s (exit code %d%s)"
	gitRemoteLookupExecutionFailureTemplate      = "Unable to read %s remote for %s: %s"
	gitRemoteUpdateStartTemplateConstant         = "Updating %s remote for %s to %s"
	gitRemoteUpdateSuccessTemplateConstant       = "%s remote for %s now points to %s"
	gitRemoteUpdateFailureTemplateConstant       = "Failed to update %s remote for %s to %s (exit code %d%s)"
	gitRemoteUpdateExecutionFailureTemplate      = "Unable to update %s remote for %s to %s: %s"
	gitRemoteAddStartTemplateConstant            = "Adding %s remote for %s pointing to %s"
	gitRemoteAddSuccessTemplateConstant          = "Added %s remote for %s pointing to %s"
	gitRemoteAddFailureTemplateConstant          = "Failed to add %s remote for %s pointing to %s (exit code %d%s)"
	gitRemoteAddExecutionFailureTemplate         = "Unable to add %s remote for %s pointing to %s: %s"
	gitLSRemoteHeadStartTemplateConstant         = "Checking default branch on %s from %s"
	gitLSRemoteHeadSuccessTemplateConstant       = "Retrieved default branch information for %s from %s"
	gitLSRemoteHeadFailureTemplateConstant       = "Failed to check default branch on %s from %s (exit code %d%s)"
	gitLSRemoteHeadExecutionFailureTemplate      = "Unable to check default branch on %s from %s: %s"
	gitSymbolicRefReadStartTemplateConstant      = "Reading HEAD reference in %s"
	gitSymbolicRefReadSuccessTemplateConstant    = "HEAD in %s points to %s"
	gitSymbolicRefReadFailureTemplateConstant    = "Failed to read HEAD reference in %s (exit code %d%s)"
	gitSymbolicRefReadExecutionFailureTemplate   = "Unable to read HEAD reference in %s: %s"
	gitSymbolicRefUpdateStartTemplateConstant    = "Pointing HEAD in %s at %s"
	gitSymbolicRefUpdateSuccessTemplateConstant  = "HEAD in %s now points at %s"
	gitSymbolicRefUpdateFailureTemplateConstant  = "Failed to point HEAD in %s at %s (exit code %d%s)"
	gitSymbolicRefUpdateExecutionFailureTemplate = "Unable to point HEAD in %s at %s: %s"
	gitRefDeletionStartTemplateConstant          = "Deleting ref %s in %s"
	gitRefDeletionSuccessTemplateConstant        = "Deleted ref %s in %s"
	gitRefDeletionFailureTemplateConstant        = "Failed to delete ref %s in %s (exit code %d%s)"
	gitRefDeletionExecutionFailureTemplate       = "Unable to delete ref %s in %s: %s"
	gitRefUpdateStartTemplateConstant            = "Updating ref %s in %s"
	gitRefUpdateSuccessTemplateConstant          = "Updated ref %s in %s"
	gitRefUpdateFailureTemplateConstant          = "Failed to update ref %s in %s (exit code %d%s)"
	gitRefUpdateExecutionFailureTemplateConstant = "Unable to update ref %s in %s: %s"
	githubAPIStartTemplateConstant               = "Calling GitHub API %s %s"
	githubAPISuccessTemplateConstant             = "Called GitHub API %s %s"
	githubAPIFailureTemplateConstant             = "GitHub API %s %s failed (exit code %d%s)"
	githubAPIExecutionFailureTemplateConstant    = "Unable to call GitHub API %s %s: %s"
	githubAPISubcommandNameConstant              = "api"
	githubAPIMethodFlagConstant                  = "-X"
	githubAPIDefaultMethodLabelConstant          = "GET"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandGitHub:
		return formatter.describeGitHubMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitCloneSubcommandNameConstant:
		return formatter.describeGitCloneMessage(command, result, failure, stage)
	case gitFetchSubcommandNameConstant:
		return formatter.describeGitFetchMessage(command, result, failure, stage)
	case gitPushSubcommandNameConstant:
		return formatter.describeGitPushMessage(command, result, failure, stage)
	case gitRemoteSubcommandNameConstant:
		return formatter.describeGitRemoteMessage(command, result, failure, stage)
	case gitLSRemoteSubcommandNameConstant:
		return formatter.describeGitLSRemoteMessage(command, result, failure, stage)
	case gitSymbolicRefSubcommandNameConstant:
		return formatter.describeGitSymbolicRefMessage(command, result, failure, stage)
	case gitUpdateRefSubcommandNameConstant:
		return formatter.describeGitUpdateRefMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCloneMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if !containsArgument(command.Details.Arguments, gitMirrorFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	positional := formatter.collectNonFlagArguments(command.Details.Arguments[1:])
	sourceURL := fallbackUnknownValueLabelConstant
	targetPath := fallbackUnknownValueLabelConstant
	if len(positional) > 0 {
		sourceURL = positional[0]
	}
	if len(positional) > 1 {
		targetPath = positional[1]
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCloneMirrorStartTemplateConstant, sourceURL, targetPath)
	case messageStageSuccess:
		return fmt.Sprintf(gitCloneMirrorSuccessTemplateConstant, sourceURL, targetPath)
	case messageStageFailure:
		return fmt.Sprintf(gitCloneMirrorFailureTemplateConstant, sourceURL, targetPath, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCloneMirrorExecutionFailureTemplate, sourceURL, targetPath, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitFetchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	remoteName := formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:])
	if len(remoteName) == 0 {
		remoteName = gitFetchAllRemotesLabelConstant
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitFetchStartTemplateConstant, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitFetchSuccessTemplateConstant, remoteName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitFetchFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitFetchExecutionFailureTemplateConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitPushMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if !containsArgument(command.Details.Arguments, gitMirrorFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	remoteName := formatter.ensureValue(formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:]))

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitPushMirrorStartTemplateConstant, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitPushMirrorSuccessTemplateConstant, remoteName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitPushMirrorFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitPushMirrorExecutionFailureTemplate, remoteName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRemoteMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	subcommand := strings.TrimSpace(arguments[1])
	positional := formatter.collectNonFlagArguments(arguments[2:])
	remoteName := fallbackUnknownValueLabelConstant
	if len(positional) > 0 {
		remoteName = positional[0]
	}

	switch subcommand {
	case gitRemoteGetURLSubcommandConstant:
		remoteURL := strings.TrimSpace(result.StandardOutput)
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitRemoteLookupStartTemplateConstant, remoteName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitRemoteLookupSuccessTemplateConstant, remoteName, workingDirectory, formatter.ensureValue(remoteURL))
		case messageStageFailure:
			return fmt.Sprintf(gitRemoteLookupFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitRemoteLookupExecutionFailureTemplate, remoteName, workingDirectory, formatter.describeFailure(failure))
		}
	case gitRemoteSetURLSubcommandConstant:
		targetURL := fallbackUnknownValueLabelConstant
		if len(positional) > 1 {
			targetURL = positional[len(positional)-1]
		}
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitRemoteUpdateStartTemplateConstant, remoteName, workingDirectory, targetURL)
		case messageStageSuccess:
			return fmt.Sprintf(gitRemoteUpdateSuccessTemplateConstant, remoteName, workingDirectory, targetURL)
		case messageStageFailure:
			return fmt.Sprintf(gitRemoteUpdateFailureTemplateConstant, remoteName, workingDirectory, targetURL, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitRemoteUpdateExecutionFailureTemplate, remoteName, workingDirectory, targetURL, formatter.describeFailure(failure))
		}
	case gitRemoteAddSubcommandConstant:
		targetURL := fallbackUnknownValueLabelConstant
		if len(positional) > 1 {
			targetURL = positional[len(positional)-1]
		}
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitRemoteAddStartTemplateConstant, remoteName, workingDirectory, targetURL)
		case messageStageSuccess:
			return fmt.Sprintf(gitRemoteAddSuccessTemplateConstant, remoteName, workingDirectory, targetURL)
		case messageStageFailure:
			return fmt.Sprintf(gitRemoteAddFailureTemplateConstant, remoteName, workingDirectory, targetURL, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitRemoteAddExecutionFailureTemplate, remoteName, workingDirectory, targetURL, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitLSRemoteMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if !containsArgument(command.Details.Arguments, gitSymrefFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	remoteName := formatter.ensureValue(formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:]))

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitLSRemoteHeadStartTemplateConstant, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitLSRemoteHeadSuccessTemplateConstant, remoteName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitLSRemoteHeadFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitLSRemoteHeadExecutionFailureTemplate, remoteName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitSymbolicRefMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	positional := formatter.collectNonFlagArguments(command.Details.Arguments[1:])

	if len(positional) >= 2 {
		targetReference := positional[len(positional)-1]
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitSymbolicRefUpdateStartTemplateConstant, workingDirectory, targetReference)
		case messageStageSuccess:
			return fmt.Sprintf(gitSymbolicRefUpdateSuccessTemplateConstant, workingDirectory, targetReference)
		case messageStageFailure:
			return fmt.Sprintf(gitSymbolicRefUpdateFailureTemplateConstant, workingDirectory, targetReference, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitSymbolicRefUpdateExecutionFailureTemplate, workingDirectory, targetReference, formatter.describeFailure(failure))
		}
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitSymbolicRefReadStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitSymbolicRefReadSuccessTemplateConstant, workingDirectory, formatter.ensureValue(strings.TrimSpace(result.StandardOutput)))
	case messageStageFailure:
		return fmt.Sprintf(gitSymbolicRefReadFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitSymbolicRefReadExecutionFailureTemplate, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitUpdateRefMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	arguments := command.Details.Arguments
	referenceName := formatter.ensureValue(formatter.extractFirstNonFlagArgument(arguments[1:]))

	if containsArgument(arguments, gitDeleteRefFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitRefDeletionStartTemplateConstant, referenceName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitRefDeletionSuccessTemplateConstant, referenceName, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitRefDeletionFailureTemplateConstant, referenceName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitRefDeletionExecutionFailureTemplate, referenceName, workingDirectory, formatter.describeFailure(failure))
		}
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitRefUpdateStartTemplateConstant, referenceName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitRefUpdateSuccessTemplateConstant, referenceName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitRefUpdateFailureTemplateConstant, referenceName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitRefUpdateExecutionFailureTemplateConstant, referenceName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 || strings.TrimSpace(arguments[0]) != githubAPISubcommandNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	endpoint := strings.TrimSpace(arguments[1])
	method := strings.TrimSpace(findFlagValue(arguments, githubAPIMethodFlagConstant))
	if len(method) == 0 {
		method = githubAPIDefaultMethodLabelConstant
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(githubAPIStartTemplateConstant, method, endpoint)
	case messageStageSuccess:
		return fmt.Sprintf(githubAPISuccessTemplateConstant, method, endpoint)
	case messageStageFailure:
		return fmt.Sprintf(githubAPIFailureTemplateConstant, method, endpoint, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(githubAPIExecutionFailureTemplateConstant, method, endpoint, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "-") {
			continue
		}
		return trimmed
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) collectNonFlagArguments(arguments []string) []string {
	collected := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "-") {
			continue
		}
		collected = append(collected, trimmed)
	}
	return collected
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == flag && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}
