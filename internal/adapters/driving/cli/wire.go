package cli

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	configfile "github.com/custodia-labs/echopress/internal/adapters/driven/config/file"
	"github.com/custodia-labs/echopress/internal/adapters/driven/llm/anthropic"
	"github.com/custodia-labs/echopress/internal/adapters/driven/notify/discord"
	"github.com/custodia-labs/echopress/internal/adapters/driven/notify/noop"
	"github.com/custodia-labs/echopress/internal/adapters/driven/publish/notion"
	"github.com/custodia-labs/echopress/internal/adapters/driven/storage/drive"
	"github.com/custodia-labs/echopress/internal/adapters/driven/storage/dropbox"
	"github.com/custodia-labs/echopress/internal/adapters/driven/storage/filesystem"
	"github.com/custodia-labs/echopress/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/echopress/internal/core/ports/driven"
	"github.com/custodia-labs/echopress/internal/core/services"
	"github.com/custodia-labs/echopress/internal/extractors"
	"github.com/custodia-labs/echopress/internal/extractors/docx"
	"github.com/custodia-labs/echopress/internal/extractors/pdf"
	"github.com/custodia-labs/echopress/internal/extractors/plaintext"
	"github.com/custodia-labs/echopress/internal/logger"
)

// Configuration keys.
const (
	keyStorageBackend   = "storage.backend"
	keySourceLocation   = "storage.source_location"
	keyReviewLocation   = "storage.review_location"
	keyApprovalLocation = "storage.approval_location"
	keyArchiveLocation  = "storage.archive_location"

	keyGoogleAccessToken  = "google.access_token"
	keyDropboxAccessToken = "dropbox.access_token"

	keyAnthropicAPIKey = "anthropic.api_key"
	keyAnthropicModel  = "anthropic.model"

	keyNotionToken    = "notion.token"
	keyNotionDatabase = "notion.database_id"

	keyDiscordWebhook = "discord.webhook_url"
)

// sourceLocation is kept for the watch command, which monitors the
// source folder directly.
var sourceLocation string

// initServices builds the orchestrators from the configuration file.
// Services whose configuration is incomplete are left nil; the commands
// that need them report the missing keys. Only an unreadable
// configuration file is fatal.
func initServices() error {
	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open configuration: %w", err)
	}
	configStore = cfg
	sourceLocation = cfg.GetString(keySourceLocation)

	store, err := buildContentStore(cfg)
	if err != nil {
		logger.Warn("Content store not available: %v", err)
	}

	notifier := buildNotifier(cfg)

	reports, err := sqlite.NewReportStore("")
	if err != nil {
		logger.Warn("Run journal not available: %v", err)
	} else {
		reportStore = reports
	}

	if store != nil {
		buildPipeline(cfg, store, notifier)
		buildApproval(cfg, store, notifier)
	}
	return nil
}

// closeServices releases wired resources.
func closeServices() {
	if reportStore != nil {
		if err := reportStore.Close(); err != nil {
			logger.Warn("Closing run journal: %v", err)
		}
	}
}

// buildContentStore selects the storage backend. The default is the
// local filesystem, which needs no credentials.
func buildContentStore(cfg driven.ConfigStore) (driven.ContentStore, error) {
	backend := cfg.GetString(keyStorageBackend)
	switch backend {
	case "", "filesystem":
		return filesystem.New(), nil
	case "drive":
		token := cfg.GetString(keyGoogleAccessToken)
		if token == "" {
			return nil, fmt.Errorf("storage backend %q requires %s", backend, keyGoogleAccessToken)
		}
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		return drive.New(context.Background(), ts)
	case "dropbox":
		token := cfg.GetString(keyDropboxAccessToken)
		if token == "" {
			return nil, fmt.Errorf("storage backend %q requires %s", backend, keyDropboxAccessToken)
		}
		return dropbox.New(token), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// buildNotifier returns the Discord notifier when a webhook is
// configured, otherwise the no-op notifier.
func buildNotifier(cfg driven.ConfigStore) driven.Notifier {
	if url := cfg.GetString(keyDiscordWebhook); url != "" {
		return discord.New(url)
	}
	return noop.New()
}

// buildPipeline wires the generation stage. Left nil when the Anthropic
// key is missing.
func buildPipeline(cfg driven.ConfigStore, store driven.ContentStore, notifier driven.Notifier) {
	generator, err := anthropic.NewGenerator(anthropic.Config{
		APIKey: cfg.GetString(keyAnthropicAPIKey),
		Model:  cfg.GetString(keyAnthropicModel),
	})
	if err != nil {
		logger.Debug("Generation stage not wired: %v", err)
		return
	}

	if prompts, err := configfile.NewPromptStore(""); err == nil {
		generator.SetPromptStore(prompts)
	}

	registry := extractors.NewRegistry(plaintext.New(), docx.New(), pdf.New())

	pipelineOrchestrator = services.NewPipelineOrchestrator(
		store,
		registry,
		generator,
		notifier,
		reportStore,
		services.PipelineConfig{
			SourceLocationID: resolveLocation(cfg, keySourceLocation),
			ReviewLocationID: resolveLocation(cfg, keyReviewLocation),
		},
	)
}

// buildApproval wires the publish stage. Left nil when the Notion
// credentials are missing.
func buildApproval(cfg driven.ConfigStore, store driven.ContentStore, notifier driven.Notifier) {
	token := cfg.GetString(keyNotionToken)
	database := cfg.GetString(keyNotionDatabase)
	if token == "" || database == "" {
		logger.Debug("Publish stage not wired: %s and %s must be set", keyNotionToken, keyNotionDatabase)
		return
	}

	approvalOrchestrator = services.NewApprovalOrchestrator(
		store,
		notion.New(token, database),
		notifier,
		reportStore,
		services.ApprovalConfig{
			ApprovalLocationID: resolveLocation(cfg, keyApprovalLocation),
			ArchiveLocationID:  resolveLocation(cfg, keyArchiveLocation),
		},
	)
}

// resolveLocation turns a configured location into a store ID. Drive
// accepts pasted folder URLs; other backends use the value verbatim.
func resolveLocation(cfg driven.ConfigStore, key string) string {
	value := cfg.GetString(key)
	if cfg.GetString(keyStorageBackend) == "drive" {
		return drive.ResolveFolderID(value)
	}
	return value
}
