// Package git provides repository inspection for the project root.
package git

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/runoshun/buildmenu/internal/domain"
)

// shortHashLen is the length of abbreviated commit hashes.
const shortHashLen = 7

// Client implements domain.RepoInspector using go-git.
type Client struct{}

// NewClient creates a new git client.
func NewClient() *Client {
	return &Client{}
}

// Ensure Client implements domain.RepoInspector interface.
var _ domain.RepoInspector = (*Client)(nil)

// Describe returns the branch and HEAD commit of the repository containing dir.
// Parent directories are searched for .git, so dir may be a subdirectory.
func (c *Client) Describe(dir string) (domain.RepoInfo, bool, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return domain.RepoInfo{}, false, nil
	}
	if err != nil {
		return domain.RepoInfo{}, false, fmt.Errorf("open repository: %w", err)
	}

	info := domain.RepoInfo{}
	if wt, err := repo.Worktree(); err == nil {
		info.Root = wt.Filesystem.Root()
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		// Unborn branch: report the name HEAD points to.
		ref, refErr := repo.Reference(plumbing.HEAD, false)
		if refErr == nil && ref.Type() == plumbing.SymbolicReference {
			info.Branch = ref.Target().Short()
		}
		return info, true, nil
	}
	if err != nil {
		return domain.RepoInfo{}, true, fmt.Errorf("resolve HEAD: %w", err)
	}

	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}
	hash := head.Hash().String()
	if len(hash) > shortHashLen {
		hash = hash[:shortHashLen]
	}
	info.Head = hash

	return info, true, nil
}
