package cli

import "database/sql"

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// DaemonCommand — run the local ingest daemon the extension posts to.
type DaemonCommand struct {
	Host string `long:"host" description:"Override daemon bind host"`
	Port int    `long:"port" description:"Override daemon port"`

	globals *GlobalFlags
	version string
}

// AddCommand — run a page event through the tracking pipeline by hand.
type AddCommand struct {
	URL   string `long:"url" description:"Page URL (required)"`
	Title string `long:"title" description:"Page title"`
	Fetch bool   `long:"fetch" description:"Fetch the page to fill in title and classification"`

	globals *GlobalFlags
	version string
}

// ProbeCommand — fetch and classify a URL without tracking it.
type ProbeCommand struct {
	URL string `long:"url" description:"Page URL (required)"`

	globals *GlobalFlags
	version string
}

// ListCommand — show tracked items, merged with the backend when reachable.
type ListCommand struct {
	Local bool   `long:"local" description:"Only show the local fallback queue"`
	Kind  string `long:"kind" description:"Filter by kind: article | video"`
	Since string `long:"since" description:"Only items newer than duration (e.g., 7d, 24h)"`
	Limit int    `long:"limit" description:"Maximum results" default:"50"`

	globals *GlobalFlags
	version string
}

// StatusCommand — show queue statistics, session, and daemon health.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// PruneCommand — remove old entries from the local fallback queue.
type PruneCommand struct {
	OlderThan string `long:"older-than" description:"Override retention period (e.g., 30d)"`
	DryRun    bool   `long:"dry-run" description:"Show what would be pruned without deleting"`

	globals *GlobalFlags
	version string
}

// PurgeCommand — delete the whole local fallback queue with confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	db      *sql.DB // injectable for testing; nil means open default DB
}

// LoginCommand — authenticate against the backend and store credentials.
type LoginCommand struct {
	Username string `long:"username" description:"Account name (required)"`
	Password string `long:"password" description:"Account password (required)"`

	globals *GlobalFlags
	version string
}

// LogoutCommand — end the backend session and forget stored credentials.
type LogoutCommand struct {
	globals *GlobalFlags
	version string
}

// RegisterCommand — create a backend account.
type RegisterCommand struct {
	Username string `long:"username" description:"Account name (required)"`
	Password string `long:"password" description:"Account password (required)"`

	globals *GlobalFlags
	version string
}

// FollowCommand — start following another user.
type FollowCommand struct {
	User string `long:"user" description:"Username to follow (required)"`

	globals *GlobalFlags
	version string
}

// UnfollowCommand — stop following another user.
type UnfollowCommand struct {
	User string `long:"user" description:"Username to unfollow (required)"`

	globals *GlobalFlags
	version string
}

// FollowingCommand — list who a user follows and who follows them.
type FollowingCommand struct {
	User string `long:"user" description:"Username to inspect (defaults to the session user)"`

	globals *GlobalFlags
	version string
}

// DeleteCommand — delete a backend item by ID.
type DeleteCommand struct {
	ID string `long:"id" description:"Item ID (required)"`

	globals *GlobalFlags
	version string
}
