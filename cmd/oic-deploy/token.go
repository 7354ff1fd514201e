package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/sudheer-sanagala/oic-deploy/core/infra/config"
	"github.com/sudheer-sanagala/oic-deploy/core/infra/logging"
	"github.com/sudheer-sanagala/oic-deploy/core/infra/secrets"
	"github.com/sudheer-sanagala/oic-deploy/core/oic"
)

func runTokenCmd(args []string) {
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}
	switch args[0] {
	case "fetch":
		cfg := config.Load()
		fs := newFlagSet("token fetch", cfg)
		save := fs.Bool("save", false, "store the token in the OS keyring")
		expiry := fs.Bool("expiry", false, "print the token expiry instead of the token")
		fs.ParseArgs(args[1:])
		fs.resolve(cfg)

		if cfg.ClientSecret == "" && cfg.ClientID != "" {
			cfg.ClientSecret = promptSecret(fmt.Sprintf("Client secret for %s: ", cfg.ClientID))
		}
		check(cfg.ValidateTokenFetch())

		token, err := oic.FetchToken(context.Background(), oic.TokenRequest{
			TokenURL:     cfg.TokenURL,
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scope:        cfg.Scope,
		})
		if err != nil {
			// token endpoints sometimes echo the request on errors
			fail(secrets.Scrub(err.Error(), cfg.ClientSecret))
		}
		if token == "" {
			fail("token endpoint returned no token")
		}
		if *save {
			check(secrets.SaveFallbackToken(token))
			logging.Info("token", "stored in keyring", "token", secrets.Mask(token))
		}
		if *expiry {
			printExpiry(token)
			return
		}
		fmt.Println(token)
	case "clear":
		check(secrets.ClearFallbackToken())
		logging.Info("token", "keyring entry cleared")
	default:
		usage()
		os.Exit(1)
	}
}

func printExpiry(token string) {
	exp, ok := oic.TokenExpiry(token)
	if !ok {
		fmt.Println("token carries no expiry")
		return
	}
	fmt.Printf("expires %s\n", exp.UTC().Format("2006-01-02T15:04:05Z"))
}

// resolveBearerToken walks the token sources in order: the static token, a
// client-credentials fetch, the fallback environment token, and finally the
// OS keyring. A keyring entry alone is a valid source, so no configuration
// check runs before the chain.
func resolveBearerToken(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.BearerToken != "" {
		return cfg.BearerToken, nil
	}
	if cfg.HasOAuthCredentials() {
		token, err := oic.FetchToken(ctx, oic.TokenRequest{
			TokenURL:     cfg.TokenURL,
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scope:        cfg.Scope,
		})
		if err != nil {
			logging.Warn("token", "token fetch failed, trying fallback",
				"error", secrets.Scrub(err.Error(), cfg.ClientSecret))
		} else if token != "" {
			logging.Info("token", "fetched", "token", secrets.Mask(token))
			return token, nil
		}
	}
	if cfg.FallbackToken != "" {
		logging.Warn("token", "using fallback token from environment")
		return cfg.FallbackToken, nil
	}
	if token := secrets.LoadFallbackToken(); token != "" {
		logging.Warn("token", "using fallback token from keyring")
		return token, nil
	}
	if err := cfg.ValidateBearerAuth(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("no bearer token could be resolved")
}

// promptSecret reads a secret from the terminal without echo. A non-terminal
// stdin returns "" and lets validation report the missing value.
func promptSecret(prompt string) string {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return ""
	}
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return ""
	}
	return string(raw)
}
