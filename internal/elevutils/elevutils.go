package elevutils

import (
	_ "embed"
	"flag"
	"fmt"
	"os"
	"strings"
)

//go:generate sh -c "printf %s $(git rev-parse HEAD) > githash.txt"
//go:embed githash.txt
var gitHash string

func GetGitHash() string {
	return strings.TrimSpace(gitHash)
}

type CmdArgs struct {
	ConfigPath    string
	EnvPath       string
	Identifier    string
	DriverAddress string
}

// ProcessCmdArgs parses the controller flags. -help and -version print and
// exit the process.
func ProcessCmdArgs() CmdArgs {
	return processCmdArgs(flag.CommandLine, os.Args[1:])
}

func processCmdArgs(flags *flag.FlagSet, arguments []string) CmdArgs {
	help := flags.Bool("help", false, "Show Help Window")
	version := flags.Bool("version", false, "Show Version")
	configPath := flags.String("config", "", "Path to a YAML configuration file")
	envPath := flags.String("env", "", "Path to a .env file with ELEVATOR_* variables")
	identifier := flags.String("id", "", "Set the identifier of the elevator. Defaults to random string")
	driverAddress := flags.String("addr", "", "Address of the elevator server. Overrides the configuration")

	flags.Parse(arguments)

	if *version {
		fmt.Println("Version:", GetGitHash())
		os.Exit(0)
	}

	if *help {
		fmt.Println("Usage: ./elevator [OPTIONS]")
		fmt.Println("TTK4235 Elevator Controller")
		fmt.Println()
		fmt.Println("Options:")
		flags.PrintDefaults()
		fmt.Println()
		fmt.Println("Environment:")
		fmt.Println("	ELEVATOR_ID, ELEVATOR_DRIVER_ADDRESS, ELEVATOR_DOOR_OPEN_DURATION,")
		fmt.Println("	ELEVATOR_POLL_PERIOD, ELEVATOR_INIT_TIMEOUT, ELEVATOR_LOG_LEVEL,")
		fmt.Println("	ELEVATOR_STATUS_ADDRESS, ELEVATOR_STATUS_PERIOD")
		os.Exit(0)
	}

	return CmdArgs{
		ConfigPath:    *configPath,
		EnvPath:       *envPath,
		Identifier:    *identifier,
		DriverAddress: *driverAddress,
	}
}
