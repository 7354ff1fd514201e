package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sudheer-sanagala/oic-deploy/core/infra/buildinfo"
	"github.com/sudheer-sanagala/oic-deploy/core/infra/config"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "integration":
		runIntegrationCmd(args)
	case "project":
		runProjectCmd(args)
	case "token":
		runTokenCmd(args)
	case "version":
		fmt.Println("oic-deploy " + buildinfo.Full())
	case "help", "-h", "--help":
		usage()
	default:
		usage()
		os.Exit(1)
	}
}

type flagSet struct {
	*flag.FlagSet
	profile  *string
	instance *string
	async    *bool
}

func newFlagSet(name string, cfg *config.Config) *flagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	profile := fs.String("profile", cfg.ProfilePath, "yaml profile with connection defaults")
	instance := fs.String("instance", cfg.InstanceName, "integration instance name")
	async := fs.Bool("async", cfg.AsyncActivation, "request asynchronous activation")
	return &flagSet{FlagSet: fs, profile: profile, instance: instance, async: async}
}

func (fs *flagSet) ParseArgs(args []string) {
	if err := fs.Parse(args); err != nil {
		fail(err.Error())
	}
}

// resolve folds flag values and the profile file back into the config.
// Precedence is flags, then environment, then profile; a flag given on the
// command line wins even when it repeats a default.
func (fs *flagSet) resolve(cfg *config.Config) {
	cfg.ProfilePath = *fs.profile
	if cfg.ProfilePath != "" {
		check(cfg.ApplyProfile(cfg.ProfilePath))
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "instance":
			cfg.InstanceName = *fs.instance
		case "async":
			cfg.AsyncActivation = *fs.async
		}
	})
}

func usage() {
	fmt.Print(`oic-deploy - Oracle Integration Cloud archive deployment

Usage:
  oic-deploy integration [--files <dir|a.iar,b.iar>] [--auth bearer|basic] [--profile file] [--instance name] [--async]
  oic-deploy project     [--files <dir|a.car,b.car>] [--auth bearer|basic] [--profile file] [--instance name]
  oic-deploy token fetch [--save] [--expiry]
  oic-deploy token clear
  oic-deploy version

Environment:
  OIC_URL                     Instance base URL (required)
  IAR_FILES / CAR_FILES       Archive directory or comma-separated list
  OIC_BEARER_TOKEN            Static bearer token
  OIC_TOKEN_URL, OIC_CLIENT_ID, OIC_CLIENT_SECRET, OIC_SCOPE
                              Client-credentials token fetch
  OIC_FALLBACK_BEARER_TOKEN   Last-resort bearer token
  OIC_USERNAME / OIC_PASSWORD Basic auth credentials
  OIC_INSTANCE_NAME           integrationInstance query parameter
  OIC_ENABLE_ASYNC_ACTIVATION Set "true" for asynchronous activation
  OIC_PROFILE                 Default --profile path
  OIC_LOG_FORMAT              Set "json" for structured log output
`)
}

func check(err error) {
	if err != nil {
		fail(err.Error())
	}
}

func fail(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

func envOr(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
