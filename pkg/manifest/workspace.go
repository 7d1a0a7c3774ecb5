// SPDX-License-Identifier: MPL-2.0

package manifest

// WorkspaceKind discriminates the closed WorkspaceConfig variant.
type WorkspaceKind int

const (
	// WorkspaceMember is a package governed by a (possibly implicit)
	// workspace root elsewhere.
	WorkspaceMember WorkspaceKind = iota
	// WorkspaceRoot is a package or virtual manifest that defines the
	// workspace itself.
	WorkspaceRoot
)

// WorkspaceConfig describes the package's workspace role. A Root carries
// the member and exclude path globs from its [workspace] section; a Member
// optionally points at the path of its governing root (package.workspace).
// Declaring both at once is rejected during interpretation, so a value is
// always exactly one of the two.
type WorkspaceConfig struct {
	kind WorkspaceKind

	// root fields; Members nil means "no explicit member list" which is
	// distinct from an explicitly empty list.
	members    []string
	hasMembers bool
	exclude    []string

	// member field; empty means the root is discovered by walking up.
	rootPath string
}

// RootWorkspace returns the config for a workspace root. members may be
// nil to mean no explicit member list.
func RootWorkspace(members []string, hasMembers bool, exclude []string) WorkspaceConfig {
	return WorkspaceConfig{
		kind:       WorkspaceRoot,
		members:    members,
		hasMembers: hasMembers,
		exclude:    exclude,
	}
}

// MemberWorkspace returns the config for a workspace member. rootPath may
// be empty when the governing root is found by directory traversal.
func MemberWorkspace(rootPath string) WorkspaceConfig {
	return WorkspaceConfig{kind: WorkspaceMember, rootPath: rootPath}
}

// Kind returns the variant discriminator.
func (w WorkspaceConfig) Kind() WorkspaceKind {
	return w.kind
}

// Members returns the explicit member globs of a root and whether a member
// list was declared at all.
func (w WorkspaceConfig) Members() ([]string, bool) {
	return w.members, w.hasMembers
}

// Exclude returns the exclude globs of a root.
func (w WorkspaceConfig) Exclude() []string {
	return w.exclude
}

// RootPath returns the declared path to the governing root of a member,
// or "" when the root is implicit.
func (w WorkspaceConfig) RootPath() string {
	return w.rootPath
}
