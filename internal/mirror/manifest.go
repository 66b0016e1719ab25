package mirror

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/mirrors/internal/gitrepo"
)

const (
	manifestPathRequiredMessageConstant   = "manifest path must be provided"
	manifestEmptyMessageConstant          = "manifest lists no mirrors"
	manifestReadFailureTemplateConstant   = "failed to read manifest: %w"
	manifestParseFailureTemplateConstant  = "failed to parse manifest: %w"
	manifestEntryUpstreamTemplateConstant = "manifest entry %d: upstream URL must be provided"
	manifestEntryNameTemplateConstant     = "manifest entry %d: could not derive mirror name from %s: %v"
	manifestDuplicateNameTemplateConstant = "manifest names mirror %s more than once"
)

// ErrManifestPathRequired indicates the manifest path was empty.
var ErrManifestPathRequired = errors.New(manifestPathRequiredMessageConstant)

// ErrManifestEmpty indicates the manifest declares no mirrors.
var ErrManifestEmpty = errors.New(manifestEmptyMessageConstant)

// ManifestEntry declares one mirror to create.
type ManifestEntry struct {
	Upstream string `yaml:"upstream"`
	Name     string `yaml:"name"`
}

// Manifest is the declarative list of mirrors consumed by bulk creation.
type Manifest struct {
	Mirrors []ManifestEntry `yaml:"mirrors"`
}

// LoadManifest reads and validates a mirror manifest. Every entry must carry
// an upstream URL, every resolved mirror name (explicit or derived from the
// upstream repository name) must be unique.
func LoadManifest(manifestPath string) (Manifest, error) {
	trimmedManifestPath := strings.TrimSpace(manifestPath)
	if len(trimmedManifestPath) == 0 {
		return Manifest{}, ErrManifestPathRequired
	}

	manifestBytes, readError := os.ReadFile(trimmedManifestPath)
	if readError != nil {
		return Manifest{}, fmt.Errorf(manifestReadFailureTemplateConstant, readError)
	}

	var manifest Manifest
	if parseError := yaml.Unmarshal(manifestBytes, &manifest); parseError != nil {
		return Manifest{}, fmt.Errorf(manifestParseFailureTemplateConstant, parseError)
	}

	if len(manifest.Mirrors) == 0 {
		return Manifest{}, ErrManifestEmpty
	}

	seenNames := make(map[string]struct{}, len(manifest.Mirrors))
	for entryIndex, manifestEntry := range manifest.Mirrors {
		trimmedUpstream := strings.TrimSpace(manifestEntry.Upstream)
		if len(trimmedUpstream) == 0 {
			return Manifest{}, fmt.Errorf(manifestEntryUpstreamTemplateConstant, entryIndex)
		}
		manifest.Mirrors[entryIndex].Upstream = trimmedUpstream

		resolvedName := strings.TrimSpace(manifestEntry.Name)
		if len(resolvedName) == 0 {
			parsedUpstream, parseError := gitrepo.ParseRemoteURL(trimmedUpstream)
			if parseError != nil {
				return Manifest{}, fmt.Errorf(manifestEntryNameTemplateConstant, entryIndex, trimmedUpstream, parseError)
			}
			resolvedName = parsedUpstream.Repository
		}
		manifest.Mirrors[entryIndex].Name = resolvedName

		if _, alreadySeen := seenNames[resolvedName]; alreadySeen {
			return Manifest{}, fmt.Errorf(manifestDuplicateNameTemplateConstant, resolvedName)
		}
		seenNames[resolvedName] = struct{}{}
	}

	return manifest, nil
}
