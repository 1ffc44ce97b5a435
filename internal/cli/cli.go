package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Daemon    *DaemonCommand
	Add       *AddCommand
	Probe     *ProbeCommand
	List      *ListCommand
	Status    *StatusCommand
	Prune     *PruneCommand
	Purge     *PurgeCommand
	Login     *LoginCommand
	Logout    *LogoutCommand
	Register  *RegisterCommand
	Follow    *FollowCommand
	Unfollow  *UnfollowCommand
	Following *FollowingCommand
	Delete    *DeleteCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "readwatch"
	parser.LongDescription = "Track the articles you read and videos you watch, share lists, and follow friends."

	cmds := &commands{
		Daemon:    &DaemonCommand{globals: &globals, version: version},
		Add:       &AddCommand{globals: &globals, version: version},
		Probe:     &ProbeCommand{globals: &globals, version: version},
		List:      &ListCommand{globals: &globals, version: version},
		Status:    &StatusCommand{globals: &globals, version: version},
		Prune:     &PruneCommand{globals: &globals, version: version},
		Purge:     &PurgeCommand{globals: &globals, version: version},
		Login:     &LoginCommand{globals: &globals, version: version},
		Logout:    &LogoutCommand{globals: &globals, version: version},
		Register:  &RegisterCommand{globals: &globals, version: version},
		Follow:    &FollowCommand{globals: &globals, version: version},
		Unfollow:  &UnfollowCommand{globals: &globals, version: version},
		Following: &FollowingCommand{globals: &globals, version: version},
		Delete:    &DeleteCommand{globals: &globals, version: version},
	}

	parser.AddCommand("daemon", "Run the tracking daemon", "Run the local HTTP service the browser extension delivers page events to.", cmds.Daemon)
	parser.AddCommand("add", "Track a URL manually", "Run a page event through the tracking pipeline by hand.", cmds.Add)
	parser.AddCommand("probe", "Classify a URL without tracking", "Fetch a page and report how it would be classified.", cmds.Probe)
	parser.AddCommand("list", "Show tracked items", "Show tracked items, merged with the backend when reachable.", cmds.List)
	parser.AddCommand("status", "Show queue and session status", "Show local queue statistics, session state, and daemon health.", cmds.Status)
	parser.AddCommand("prune", "Prune old local queue entries", "Remove entries older than the retention period from the local fallback queue.", cmds.Prune)
	parser.AddCommand("purge", "Delete ALL local queue data", "Delete the whole local fallback queue. Destructive operation with safety prompt.", cmds.Purge)
	parser.AddCommand("login", "Log in to the backend", "Authenticate against the backend and store credentials for the daemon.", cmds.Login)
	parser.AddCommand("logout", "Log out of the backend", "End the backend session and forget stored credentials.", cmds.Logout)
	parser.AddCommand("register", "Create a backend account", "Create a new backend account.", cmds.Register)
	parser.AddCommand("follow", "Follow a user", "Start following another user's lists.", cmds.Follow)
	parser.AddCommand("unfollow", "Unfollow a user", "Stop following another user's lists.", cmds.Unfollow)
	parser.AddCommand("following", "Show follow relationships", "List who a user follows and who follows them.", cmds.Following)
	parser.AddCommand("delete", "Delete a backend item", "Delete a tracked item from the backend by ID.", cmds.Delete)

	return parser, &globals, cmds
}

// Run is the main entry point for the readwatch CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("readwatch %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
