package mirror_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/mirrors/internal/mirror"
)

func TestNewRefSanitizerRequiresManager(t *testing.T) {
	sanitizer, constructionError := mirror.NewRefSanitizer(nil, nil)
	require.ErrorIs(t, constructionError, mirror.ErrRefSanitizerNotConfigured)
	require.Nil(t, sanitizer)
}

func TestSanitizeRefsDeletesReservedRefs(t *testing.T) {
	reservedRefs := []string{"refs/pull/1/head", "refs/pull/2/head", "refs/pull/2/merge"}
	manager := &fakeVersionControl{}
	var requestedPrefix string
	var deletedRefs []string
	manager.listRefsFunc = func(_ string, refPrefix string) ([]string, error) {
		requestedPrefix = refPrefix
		return reservedRefs, nil
	}
	manager.deleteRefFunc = func(_ string, refName string) error {
		deletedRefs = append(deletedRefs, refName)
		return nil
	}

	sanitizer, constructionError := mirror.NewRefSanitizer(manager, nil)
	require.NoError(t, constructionError)

	sanitizer.SanitizeRefs(context.Background(), remoteTestRepositoryPathConstant)

	require.Equal(t, mirror.ReservedRefPrefixConstant, requestedPrefix)
	require.Equal(t, reservedRefs, deletedRefs)
}

func TestSanitizeRefsToleratesEnumerationFailure(t *testing.T) {
	manager := &fakeVersionControl{
		listRefsFunc: func(string, string) ([]string, error) {
			return nil, errors.New("enumeration failed")
		},
	}

	sanitizer, constructionError := mirror.NewRefSanitizer(manager, nil)
	require.NoError(t, constructionError)

	require.NotPanics(t, func() {
		sanitizer.SanitizeRefs(context.Background(), remoteTestRepositoryPathConstant)
	})
	require.Zero(t, manager.callCount("DeleteRef"))
}

func TestSanitizeRefsContinuesPastDeletionFailure(t *testing.T) {
	manager := &fakeVersionControl{}
	var deletedRefs []string
	manager.listRefsFunc = func(string, string) ([]string, error) {
		return []string{"refs/pull/1/head", "refs/pull/2/head"}, nil
	}
	manager.deleteRefFunc = func(_ string, refName string) error {
		if refName == "refs/pull/1/head" {
			return errors.New("deletion rejected")
		}
		deletedRefs = append(deletedRefs, refName)
		return nil
	}

	sanitizer, constructionError := mirror.NewRefSanitizer(manager, nil)
	require.NoError(t, constructionError)

	sanitizer.SanitizeRefs(context.Background(), remoteTestRepositoryPathConstant)
	require.Equal(t, []string{"refs/pull/2/head"}, deletedRefs)
}
