// Package command parses and executes admin console commands against the
// running gift engine.
package command

import (
	"errors"
	"strings"

	"github.com/focustense/penpals-server/internal/database"
	"github.com/focustense/penpals-server/internal/gifting"
	"github.com/focustense/penpals-server/internal/sim"
)

type Command struct {
	Name string
	Args []string
}

// RequireArgs checks if the command has at least the minimum number of arguments
// Returns an error with the usage message if not enough arguments are provided
func (c *Command) RequireArgs(min int, usage string) error {
	if len(c.Args) < min {
		return errors.New(usage)
	}
	return nil
}

func ParseCommand(input string) *Command {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Name: "", Args: []string{}}
	}

	return &Command{
		Name: strings.ToLower(parts[0]),
		Args: parts[1:],
	}
}

// Executor binds console commands to the running world, engine and
// database. The database may be nil when persistence is disabled.
type Executor struct {
	world  *sim.Simulation
	engine *gifting.Engine
	db     *database.Database
}

// NewExecutor creates an executor over the given collaborators.
func NewExecutor(world *sim.Simulation, engine *gifting.Engine, db *database.Database) *Executor {
	return &Executor{world: world, engine: engine, db: db}
}

// Execute runs a single console command and returns the response text.
func (e *Executor) Execute(input string) string {
	c := ParseCommand(input)

	switch c.Name {
	case "":
		return ""
	case "help", "?":
		return e.executeHelp()
	case "date", "time":
		return e.executeDate()
	case "advance", "endday":
		return e.executeAdvance()
	case "send":
		return e.executeSend(c)
	case "queue", "outgoing":
		return e.executeQueue(c)
	case "dryrun", "preview":
		return e.executeDryRun()
	case "receiveall", "sweep":
		return e.executeReceiveAll()
	case "returns":
		return e.executeReturns(c)
	case "collect":
		return e.executeCollect(c)
	case "friendship", "hearts":
		return e.executeFriendship(c)
	case "save":
		return e.executeSave()
	default:
		return "Unknown command: " + c.Name + " (try 'help')"
	}
}

func (e *Executor) executeHelp() string {
	return strings.Join([]string{
		"Available commands:",
		"  date                          Show the current world date",
		"  advance                       End the day: sweep, advance, morning sweep",
		"  send <player> <npc> [quest]   Mail the player's held item to an NPC",
		"  queue [player]                List scheduled parcels",
		"  dryrun                        Preview the next sweep without changes",
		"  receiveall                    Force a sweep right now",
		"  returns <player>              List unclaimed gift returns",
		"  collect <player> <mail-key>   Open a return mail and reclaim the gift",
		"  friendship <player> [npc]     Show friendship standings",
		"  save                          Persist the gift-mail store",
		"  quit                          Close the console session",
	}, "\n")
}
