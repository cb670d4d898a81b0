package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Environment variables read by nw and passed to extensions.
const (
	EnvDataset  = "NW_DATASET"
	EnvConfig   = "NW_CONFIG"
	EnvCurrency = "NW_CURRENCY"
	EnvVerbose  = "NW_VERBOSE"
	// EnvToday fixes the reference date of projections, for reproducible outputs.
	EnvToday = "NW_TODAY"
)

// ExtensionPrefix prefixes the name of extension binaries.
const ExtensionPrefix = "nw-"

// RunExtension attempts to find and execute an external nw-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := ExtensionPrefix + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		Logger.WithError(err).Debugf("external command %q not found", externalCmdName)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extensionEnv()...)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv returns the global flags as environment variables.
func extensionEnv() []string {
	cfg := mustConfig()
	return []string{
		EnvDataset + "=" + datasetPath(),
		EnvConfig + "=" + envOr(*configFile, EnvConfig, ""),
		EnvCurrency + "=" + strings.ToUpper(cfg.Currency),
		EnvVerbose + "=" + strconv.FormatBool(*Verbose),
	}
}
