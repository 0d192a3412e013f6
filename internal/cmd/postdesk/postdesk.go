// Package postdesk parses postdesk command flags and wires its dependencies.
package postdesk

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/louisbranch/postdesk/internal/platform/otel"
	"github.com/louisbranch/postdesk/internal/platform/timeouts"
	"github.com/louisbranch/postdesk/internal/services/postdesk"
	"github.com/louisbranch/postdesk/internal/services/postdesk/credentials"
	"github.com/louisbranch/postdesk/internal/services/postdesk/session"
	"github.com/louisbranch/postdesk/internal/services/postdesk/store/postgrest"
	"github.com/louisbranch/postdesk/internal/services/postdesk/webhook"
	"golang.org/x/sync/errgroup"
)

const defaultHTTPAddr = "localhost:8090"

// Config holds the postdesk command configuration.
type Config struct {
	HTTPAddr        string
	CredentialsFile string
	Settings        postdesk.Settings

	lookup EnvLookup
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// ParseConfig parses environment and flags into a Config. Flags win over
// the environment.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	settings, err := postdesk.LoadSettings(lookup)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		HTTPAddr:        envOrDefault(lookup, []string{"POSTDESK_HTTP_ADDR"}, defaultHTTPAddr),
		CredentialsFile: envOrDefault(lookup, []string{"POSTDESK_CREDENTIALS_FILE"}, credentials.DefaultFile),
		Settings:        settings,
		lookup:          lookup,
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.CredentialsFile, "credentials-file", cfg.CredentialsFile, "fallback YAML credentials file")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the postdesk web server and the list refresher.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "postdesk")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	creds, source, err := credentials.Load(cfg.lookup, cfg.CredentialsFile)
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}
	log.Printf("credentials loaded from %s", source)

	st, err := postgrest.New(postgrest.Config{
		BaseURL:      creds.SupabaseURL,
		APIKey:       creds.SupabaseAnonKey,
		DefaultLimit: cfg.Settings.DefaultLimit,
	})
	if err != nil {
		return fmt.Errorf("init store client: %w", err)
	}
	generator, err := webhook.New(webhook.Config{
		ContentURL: creds.ContentWebhook,
		ImagesURL:  creds.ImagesWebhook,
	})
	if err != nil {
		return fmt.Errorf("init webhook client: %w", err)
	}

	board := session.NewBoard(st, cfg.Settings.DefaultLimit, cfg.Settings.AutoRefreshInterval)
	server, err := postdesk.NewServer(postdesk.Config{
		HTTPAddr:  cfg.HTTPAddr,
		Store:     st,
		Generator: generator,
		Board:     board,
		Settings:  cfg.Settings,
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := server.ListenAndServe(groupCtx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		return board.Run(groupCtx)
	})
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func envOrDefault(lookup EnvLookup, keys []string, fallback string) string {
	for _, key := range keys {
		if lookup == nil {
			break
		}
		value, ok := lookup(key)
		if ok {
			trimmed := strings.TrimSpace(value)
			if trimmed != "" {
				return trimmed
			}
		}
	}
	return fallback
}
