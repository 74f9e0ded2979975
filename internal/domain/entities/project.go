package entities

// DefaultMaxLog is the number of latest commits fetched when syncing the ledger.
const DefaultMaxLog = 30

// VCSConfig holds the version-control settings of a project.
type VCSConfig struct {
	Type     string `json:"type"` // "svn" or "git"
	Username string `json:"username"`
	Password string `json:"password"`
	MaxLog   int    `json:"maxLog"`
}

// Project is the persisted configuration of the project being released.
type Project struct {
	Name               string    `json:"projectName"`
	LocalPath          string    `json:"localPath"`          // Working copy root, e.g. /work/dc/phase1
	ServerPath         string    `json:"serverPath"`         // Build output tree that pre-built artifacts are copied from
	ReleaseManagerPath string    `json:"releaseManagerPath"` // Directory holding the release ledger
	VCS                VCSConfig `json:"svn"`
}
