package checker

import "path/filepath"

// Config is read once at process start from config.json5 and passed
// into the service explicitly, no component reads the environment.
type Config struct {
	// directory holding the persisted state files and run log
	DataDir string `json:"data_dir"`

	HouseSeats SiteConfig `json:"houseseats"`
	FirstTix   SiteConfig `json:"firsttix"`

	Smtp SmtpConfig `json:"smtp"`
	// recipient of the new-show digest
	NotificationEmail string `json:"notification_email"`

	Denylist DenylistConfig `json:"denylist"`

	// public page serving available_shows.json, linked in the digest
	ShowsPageUrl string `json:"shows_page_url"`
}

type SiteConfig struct {
	// empty means the scraper default
	BaseUrl  string `json:"base_url"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	// empty skips email notifications entirely
	Password string `json:"password"`
}

type DenylistConfig struct {
	// raw gist holding the remote denylist, tried before the local file
	GistRawUrl string `json:"gist_raw_url"`
	// gist edit page, linked in the digest footer
	GistEditUrl string `json:"gist_edit_url"`
}

const (
	notifiedFile = "notified_shows.json"
	historyFile  = "show_history.json"
	snapshotFile = "available_shows.json"
	denylistFile = "denylist.txt"
	runLogFile   = "houseseats.log"
)

// SnapshotPath and DenylistPath locate state files for callers outside
// the service, such as the CLI.
func SnapshotPath(dataDir string) string {
	return filepath.Join(dataDir, snapshotFile)
}

func DenylistPath(dataDir string) string {
	return filepath.Join(dataDir, denylistFile)
}
