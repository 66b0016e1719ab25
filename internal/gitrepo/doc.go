// Package gitrepo contains helpers for interrogating and manipulating Git repositories.
//
// It exposes RepositoryManager for mirror clones, remote configuration, ref
// manipulation, and plumbing-level commit assembly, along with remote URL
// parsing utilities consumed by the mirror workflows.
package gitrepo
