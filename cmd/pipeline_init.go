package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/recipe-cli/internal/gateway"
	"github.com/sells-group/recipe-cli/internal/nutrition"
	"github.com/sells-group/recipe-cli/internal/pipeline"
	"github.com/sells-group/recipe-cli/internal/scrape"
	"github.com/sells-group/recipe-cli/internal/search"
	"github.com/sells-group/recipe-cli/internal/store"
	"github.com/sells-group/recipe-cli/pkg/ninjas"
	"github.com/sells-group/recipe-cli/pkg/serper"
)

// pipelineEnv holds the initialized clients, store, and pipeline needed by
// the analyze/serve commands.
type pipelineEnv struct {
	Store    store.Store // may be nil when history is disabled
	Pipeline *pipeline.Pipeline
}

// Close releases resources held by the pipeline environment.
func (pe *pipelineEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

// initStore opens and migrates the report history store. Returns nil when
// history is disabled in config.
func initStore(ctx context.Context) (store.Store, error) {
	if !cfg.Store.Enabled {
		zap.L().Debug("report history disabled")
		return nil, nil
	}

	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	return st, nil
}

// initPipeline validates credentials, sets up the store and both API
// clients, and builds the Pipeline. Callers should defer env.Close().
func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	gw := gateway.New(time.Duration(cfg.Gateway.TimeoutSecs) * time.Second)

	serperClient := serper.NewClient(cfg.Serper.Key,
		serper.WithBaseURL(cfg.Serper.BaseURL),
		serper.WithGateway(gw),
	)
	ninjasClient := ninjas.NewClient(cfg.Ninjas.Key,
		ninjas.WithBaseURL(cfg.Ninjas.BaseURL),
		ninjas.WithGateway(gw),
	)

	p := pipeline.New(
		search.NewAdapter(serperClient),
		scrape.New(gw, cfg.Scrape.MaxCandidates),
		nutrition.NewAdapter(ninjasClient),
		st,
	)

	return &pipelineEnv{Store: st, Pipeline: p}, nil
}
