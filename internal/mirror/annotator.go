package mirror

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	// NoticeMarkerConstant is the grep-able sentinel whose presence makes annotation a no-op.
	// It must stay byte-identical across releases: already-annotated mirrors are
	// recognized solely by this substring.
	NoticeMarkerConstant = "This is a mirror. See upstream:"

	noticeLineTemplateConstant              = "*This is a mirror. See upstream: %s*"
	noticeCommitMessageConstant             = "Add mirror notice"
	annotatorManagerMissingMessageConstant  = "annotator requires a version control manager"
	upstreamMissingWarningMessageConstant   = "upstream remote missing; skipping annotation"
	scratchDirectoryPatternConstant         = "mirrors-annotate-"
	scratchIndexFileNameConstant            = "index"
	scratchCreationFailureTemplateConstant  = "failed to create annotation scratch area: %w"
	blobWriteFailureTemplateConstant        = "failed to write notice blob: %w"
	indexPopulationFailureTemplateConstant  = "failed to populate annotation index: %w"
	indexUpdateFailureTemplateConstant      = "failed to stage notice file: %w"
	treeWriteFailureTemplateConstant        = "failed to write annotated tree: %w"
	commitCreationFailureTemplateConstant   = "failed to create annotation commit: %w"
	headRefReadFailureTemplateConstant      = "failed to read HEAD reference: %w"
	refUpdateFailureTemplateConstant        = "failed to advance branch to annotation commit: %w"
	regularFileModeConstant                 = "100644"
	headCommitRevisionConstant              = "HEAD^{commit}"
	headTreeRevisionConstant                = "HEAD^{tree}"
	headTreeishConstant                     = "HEAD"
	syntheticNoticeFileNameConstant         = "README.md"
	noticeBlockSeparatorConstant            = "\n\n"
	noticeTrailingNewlineConstant           = "\n"
	annotationSkippedDebugMessageConstant   = "notice marker already present"
	annotationCommittedDebugMessageConstant = "annotated mirror with provenance notice"
	logFieldNoticeFileConstant              = "notice_file"
	logFieldCommitConstant                  = "commit"
)

// noticeFileCandidates is the fixed priority order scanned for an existing README-like file.
var noticeFileCandidates = []string{"README.md", "README.rst", "README.txt", "README"}

// ErrAnnotatorNotConfigured indicates the annotator was constructed without a manager.
var ErrAnnotatorNotConfigured = errors.New(annotatorManagerMissingMessageConstant)

// AnnotationResult captures the observable outcome of an annotation pass.
type AnnotationResult struct {
	NoticeFile    string
	CommitCreated bool
}

// Annotator prepends a provenance notice to a mirror's README via a synthetic
// commit, without requiring a persistent working checkout.
type Annotator struct {
	manager VersionControl
	logger  *zap.Logger
}

// NewAnnotator constructs an Annotator around the provided manager.
func NewAnnotator(manager VersionControl, logger *zap.Logger) (*Annotator, error) {
	if manager == nil {
		return nil, ErrAnnotatorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Annotator{manager: manager, logger: logger}, nil
}

// Annotate ensures the first README-like file in the mirror carries the
// provenance notice. A missing upstream remote downgrades to a warning.
// The pass is idempotent: the marker substring is the sole annotation check.
func (annotator *Annotator) Annotate(executionContext context.Context, repositoryPath string) (AnnotationResult, error) {
	upstreamURL, upstreamError := annotator.manager.GetRemoteURL(executionContext, repositoryPath, UpstreamRemoteNameConstant)
	if upstreamError != nil {
		annotator.logger.Warn(upstreamMissingWarningMessageConstant,
			zap.String(logFieldRepositoryPathConstant, repositoryPath),
			zap.Error(upstreamError),
		)
		return AnnotationResult{}, nil
	}

	headCommit, headCommitError := annotator.manager.ResolveCommit(executionContext, repositoryPath, headCommitRevisionConstant)
	if headCommitError != nil {
		// Unborn HEAD: the mirror has no commits yet, annotate via the synthetic file path.
		headCommit = ""
	}

	noticeFile, newContent, contentError := annotator.buildNoticeContent(executionContext, repositoryPath, headCommit, upstreamURL)
	if contentError != nil {
		return AnnotationResult{}, contentError
	}
	if len(newContent) == 0 {
		annotator.logger.Debug(annotationSkippedDebugMessageConstant,
			zap.String(logFieldRepositoryPathConstant, repositoryPath),
			zap.String(logFieldNoticeFileConstant, noticeFile),
		)
		return AnnotationResult{NoticeFile: noticeFile}, nil
	}

	scratchDirectory, scratchError := os.MkdirTemp("", scratchDirectoryPatternConstant)
	if scratchError != nil {
		return AnnotationResult{}, fmt.Errorf(scratchCreationFailureTemplateConstant, scratchError)
	}
	defer func() {
		_ = os.RemoveAll(scratchDirectory)
	}()
	scratchIndexPath := filepath.Join(scratchDirectory, scratchIndexFileNameConstant)

	if len(headCommit) > 0 {
		if populateError := annotator.manager.ReadTreeIntoIndex(executionContext, repositoryPath, scratchIndexPath, headTreeRevisionConstant); populateError != nil {
			return AnnotationResult{}, fmt.Errorf(indexPopulationFailureTemplateConstant, populateError)
		}
	}

	blobIdentifier, blobError := annotator.manager.WriteBlob(executionContext, repositoryPath, []byte(newContent))
	if blobError != nil {
		return AnnotationResult{}, fmt.Errorf(blobWriteFailureTemplateConstant, blobError)
	}

	if stageError := annotator.manager.UpdateIndexEntry(executionContext, repositoryPath, scratchIndexPath, regularFileModeConstant, blobIdentifier, noticeFile); stageError != nil {
		return AnnotationResult{}, fmt.Errorf(indexUpdateFailureTemplateConstant, stageError)
	}

	annotatedTree, treeError := annotator.manager.WriteTreeFromIndex(executionContext, repositoryPath, scratchIndexPath)
	if treeError != nil {
		return AnnotationResult{}, fmt.Errorf(treeWriteFailureTemplateConstant, treeError)
	}

	if len(headCommit) > 0 {
		currentTree, currentTreeError := annotator.manager.ResolveCommit(executionContext, repositoryPath, headTreeRevisionConstant)
		if currentTreeError == nil && currentTree == annotatedTree {
			return AnnotationResult{NoticeFile: noticeFile}, nil
		}
	}

	annotationCommit, commitError := annotator.manager.CommitTree(executionContext, repositoryPath, annotatedTree, headCommit, noticeCommitMessageConstant)
	if commitError != nil {
		return AnnotationResult{}, fmt.Errorf(commitCreationFailureTemplateConstant, commitError)
	}

	headReference, headReferenceError := annotator.manager.ReadSymbolicHead(executionContext, repositoryPath)
	if headReferenceError != nil {
		return AnnotationResult{}, fmt.Errorf(headRefReadFailureTemplateConstant, headReferenceError)
	}

	if refUpdateError := annotator.manager.UpdateRef(executionContext, repositoryPath, headReference, annotationCommit); refUpdateError != nil {
		return AnnotationResult{}, fmt.Errorf(refUpdateFailureTemplateConstant, refUpdateError)
	}

	annotator.logger.Debug(annotationCommittedDebugMessageConstant,
		zap.String(logFieldRepositoryPathConstant, repositoryPath),
		zap.String(logFieldNoticeFileConstant, noticeFile),
		zap.String(logFieldCommitConstant, annotationCommit),
	)

	return AnnotationResult{NoticeFile: noticeFile, CommitCreated: true}, nil
}

// buildNoticeContent selects the notice file and computes its new content.
// Empty content signals that the marker is already present and no change is needed.
func (annotator *Annotator) buildNoticeContent(executionContext context.Context, repositoryPath string, headCommit string, upstreamURL string) (string, string, error) {
	noticeBlock := fmt.Sprintf(noticeLineTemplateConstant, strings.TrimSpace(upstreamURL))

	if len(headCommit) == 0 {
		return syntheticNoticeFileNameConstant, noticeBlock + noticeTrailingNewlineConstant, nil
	}

	treeEntries, listError := annotator.manager.ListTreeEntries(executionContext, repositoryPath, headTreeishConstant)
	if listError != nil {
		return "", "", listError
	}

	existingEntries := make(map[string]struct{}, len(treeEntries))
	for _, entryName := range treeEntries {
		existingEntries[entryName] = struct{}{}
	}

	for _, candidateName := range noticeFileCandidates {
		if _, exists := existingEntries[candidateName]; !exists {
			continue
		}

		currentContent, readError := annotator.manager.ReadTreeFile(executionContext, repositoryPath, headTreeishConstant, candidateName)
		if readError != nil {
			return "", "", readError
		}
		if strings.Contains(currentContent, NoticeMarkerConstant) {
			return candidateName, "", nil
		}
		return candidateName, noticeBlock + noticeBlockSeparatorConstant + currentContent, nil
	}

	return syntheticNoticeFileNameConstant, noticeBlock + noticeTrailingNewlineConstant, nil
}
