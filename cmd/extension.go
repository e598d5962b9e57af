package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/etnz/watchlist/logging"
	"go.uber.org/zap"
)

// Environment variables passing the global flags to extensions.
const (
	EnvConfig       = "WL_CONFIG"
	EnvLink         = "WL_LINK"
	EnvStoreBackend = "WL_STORE_BACKEND"
	EnvStorePath    = "WL_STORE_PATH"
	EnvVerbose      = "WL_VERBOSE"
)

// ExtensionPrefix prefixes the executables run as wl subcommands.
const ExtensionPrefix = "wl-"

// RunExtension attempts to find and execute an external wl-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := ExtensionPrefix + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		logging.L().Debug("extension not found", zap.String("command", externalCmdName), zap.Error(err))
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr

	// Pass global flags as environment variables
	cmd.Env = append(os.Environ(), extensionEnv()...)

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv returns the global flags as environment. Unset store flags are
// omitted so that the configuration still applies in the extension.
func extensionEnv() []string {
	env := []string{
		EnvConfig + "=" + *configFile,
		EnvLink + "=" + *linkQuery,
		EnvVerbose + "=" + strconv.FormatBool(*Verbose),
	}
	if *storeBackend != "" {
		env = append(env, EnvStoreBackend+"="+*storeBackend)
	}
	if *storePath != "" {
		env = append(env, EnvStorePath+"="+*storePath)
	}
	return env
}
