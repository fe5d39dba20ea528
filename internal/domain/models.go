package domain

import "strings"

// ForgeHost is the only forge domain ghget understands
const ForgeHost = "github.com"

// Kind is the URL segment telling whether the target is a directory or a file
type Kind string

const (
	KindTree Kind = "tree"
	KindBlob Kind = "blob"
)

// SourceReference is the parsed form of a forge tree/blob URL
type SourceReference struct {
	RawURL    string
	Host      string
	Owner     string
	Repo      string
	Kind      Kind
	Remainder []string // branch-name/path-within-repo, split point unknown
}

// Joined returns the remainder segments joined with "/"
func (r *SourceReference) Joined() string {
	return strings.Join(r.Remainder, "/")
}

// CloneURL returns the HTTPS URL of the repository
func (r *SourceReference) CloneURL() string {
	return "https://" + r.Host + "/" + r.Owner + "/" + r.Repo
}

// SSHURL returns the SSH transport endpoint of the repository
func (r *SourceReference) SSHURL(user string) string {
	if user == "" {
		user = "git"
	}
	return "ssh://" + user + "@" + r.Host + "/" + r.Owner + "/" + r.Repo + ".git"
}

// CloneTarget holds everything needed to clone a repository for one run
type CloneTarget struct {
	CloneURL     string // https://<host>/<owner>/<repo>
	TransportURL string // endpoint actually dialed
	ScratchDir   string
}

// ResolvedLocation is the result of splitting a remainder into branch and path
type ResolvedLocation struct {
	Branch       string
	RelativePath string
}

// Identity describes the SSH key used for every network operation of a run
type Identity struct {
	KeyPath               string
	Passphrase            string
	User                  string
	InsecureIgnoreHostKey bool
}
