package cmd

import (
	"context"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	"github.com/Laisky/zap"
	"github.com/redis/go-redis/v9"

	"github.com/Laisky/search-rag/internal/person"
	"github.com/Laisky/search-rag/library/config"
	rdb "github.com/Laisky/search-rag/library/db/redis"
	"github.com/Laisky/search-rag/library/log"
	"github.com/Laisky/search-rag/library/ragbrowser"
)

// deps holds everything a subcommand needs after startup.
type deps struct {
	settings *config.Settings
	svc      *person.Service
	cache    *rdb.DB
}

func (d *deps) Close() {
	if d.cache == nil {
		return
	}
	if err := d.cache.Close(); err != nil {
		log.Logger.Warn("close redis", zap.Error(err))
	}
}

// buildDeps resolves settings and wires the Actor client, the optional cache
// and the person service.
func buildDeps(ctx context.Context) (*deps, error) {
	st, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "load settings")
	}

	httpClient, err := gutils.NewHTTPClient(gutils.WithHTTPClientTimeout(st.HTTPTimeout))
	if err != nil {
		return nil, errors.Wrap(err, "new http client")
	}

	d := &deps{settings: st}
	opts := []ragbrowser.Option{
		ragbrowser.WithEndpoint(st.BaseURL),
		ragbrowser.WithHTTPClient(httpClient),
		ragbrowser.WithLogger(log.Logger.Named("actor")),
	}

	if st.Redis != nil {
		db := rdb.NewDB(&redis.Options{
			Addr:     st.Redis.Addr,
			Password: st.Redis.Password,
			DB:       st.Redis.DB,
		})
		if err := db.Ping(ctx); err != nil {
			// the cache is disposable, search still works without it
			log.Logger.Warn("redis unavailable, run without cache",
				zap.String("addr", st.Redis.Addr), zap.Error(err))
			_ = db.Close()
		} else {
			d.cache = db
			opts = append(opts, ragbrowser.WithCache(rdb.NewActorCache(db), st.CacheTTL))
			log.Logger.Info("actor result cache enabled",
				zap.String("addr", st.Redis.Addr), zap.Duration("ttl", st.CacheTTL))
		}
	}

	client, err := ragbrowser.NewClient(st.APIToken, opts...)
	if err != nil {
		d.Close()
		return nil, errors.Wrap(err, "new actor client")
	}

	d.svc, err = person.NewService(client, person.WithLogger(log.Logger.Named("person")))
	if err != nil {
		d.Close()
		return nil, errors.Wrap(err, "new person service")
	}

	return d, nil
}
