// Package app assembles the assistant from configuration. The HTTP server and
// the terminal client share it.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Akshaya1307/workbuddy/internal/catalog"
	"github.com/Akshaya1307/workbuddy/internal/config"
	"github.com/Akshaya1307/workbuddy/internal/intent"
	"github.com/Akshaya1307/workbuddy/internal/llm"
	natsclient "github.com/Akshaya1307/workbuddy/internal/nats"
	"github.com/Akshaya1307/workbuddy/internal/service"
	"github.com/Akshaya1307/workbuddy/internal/skill"
	"github.com/Akshaya1307/workbuddy/internal/store"
	"github.com/Akshaya1307/workbuddy/internal/workflow"
	"github.com/Akshaya1307/workbuddy/pkg/logger"
)

// App holds the wired services.
type App struct {
	Catalog       *catalog.Catalog
	Store         *store.Store
	Log           *workflow.Log
	Conversations *service.ConversationService
	Assistant     *service.AssistantService
	Dashboard     *service.DashboardService

	// NATS is nil when the activity feed is disabled.
	NATS *natsclient.Client
}

// New builds the App. A NATS connection failure is returned as an error; an
// LLM client failure only disables the summarizer.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	if cfg.DefaultUser != "" {
		cat.DefaultUser = cfg.DefaultUser
	}

	a := &App{Catalog: cat, Store: store.New()}

	var logOpts []workflow.Option
	var publisher service.MessagePublisher
	natsCfg := natsclient.Config{
		URL:      cfg.NATSURL,
		CAFile:   cfg.NATSCAFile,
		CertFile: cfg.NATSCertFile,
		KeyFile:  cfg.NATSKeyFile,
		Token:    cfg.NATSToken,
	}
	if natsCfg.Enabled() {
		client, err := natsclient.Connect(ctx, natsCfg, log.Named("nats"))
		if err != nil {
			return nil, err
		}
		streams := natsclient.NewStreamManager(client)
		if err := streams.EnsureStream(ctx); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to ensure stream: %w", err)
		}
		a.NATS = client
		logOpts = append(logOpts, workflow.WithSink(streams))
		publisher = streams
		log.Info("activity feed enabled", zap.String("stream", natsclient.StreamName))
	}

	a.Log = workflow.NewLog(log.Named("workflow"), logOpts...)

	var summarizer skill.Summarizer
	client, err := llm.FromKeys(llm.Provider(cfg.DefaultLLM), cfg.AnthropicAPIKey, cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	switch {
	case err != nil:
		log.Warn("failed to create LLM client, using canned policy summaries", zap.Error(err))
	case client != nil:
		summarizer = llm.NewPolicySummarizer(client, cfg.LLMModel, cfg.SummarizerTimeout)
		log.Info("policy summarizer enabled", zap.String("provider", client.Name()))
	}

	classifier := intent.NewClassifier(cat)
	registry, err := skill.NewRegistry(skill.Builtin(&skill.Deps{
		Catalog:    cat,
		Classifier: classifier,
		Store:      a.Store,
		Log:        a.Log,
		Summarizer: summarizer,
		Logger:     log.Named("skill"),
	})...)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Conversations = service.NewConversationService(cat.DefaultUser, log.Named("conversations"))
	a.Assistant = service.NewAssistantService(classifier, registry, a.Conversations, publisher, log.Named("assistant"))
	a.Dashboard = service.NewDashboardService(a.Store, a.Log, a.Conversations, cfg.DashboardLogLimit)

	return a, nil
}

// Close releases the NATS connection if there is one.
func (a *App) Close() {
	if a.NATS != nil {
		a.NATS.Close()
	}
}
