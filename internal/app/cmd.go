package app

// Command is the application start mode.
type Command string

const (
	// CommandServe starts the API server.
	CommandServe Command = "serve"
	// CommandLoad runs one catalog load and prints a summary.
	CommandLoad Command = "load"
	// CommandHealthcheck probes the local /health endpoint. For Docker
	// healthchecks in distroless images.
	CommandHealthcheck Command = "healthcheck"
)

// ParseCommand resolves the subcommand from the command line
// arguments. Empty or unknown arguments fall back to CommandServe.
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandServe
	}

	switch args[0] {
	case "serve":
		return CommandServe
	case "load":
		return CommandLoad
	case "healthcheck":
		return CommandHealthcheck
	default:
		return CommandServe
	}
}
