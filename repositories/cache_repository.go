package repositories

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/karlseguin/ccache/v3"
	"github.com/rs/zerolog/log"

	"estate-api/query"
)

const generationKey = "search:generation"

// CacheRepository guarda resultados de búsqueda codificados, indexados por plan
// compilado
type CacheRepository interface {
	// Key arma la clave de cache del plan con la generación actual
	Key(plan query.Plan) string
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	// Invalidate deja inalcanzables todas las claves entregadas hasta ahora
	Invalidate()
}

// CacheOptions configura los dos niveles de cache. Un MemcachedHost vacío
// desactiva el nivel compartido.
type CacheOptions struct {
	MemcachedHost string
	LocalTTL      time.Duration
	SharedTTL     time.Duration
	MaxSize       int64
}

// cacheRepository pone una ccache local delante de memcached
type cacheRepository struct {
	local     *ccache.Cache[[]byte]
	shared    *memcache.Client
	localTTL  time.Duration
	sharedTTL time.Duration
	localGen  atomic.Uint64
}

// NewCacheRepository crea la cache de dos niveles
func NewCacheRepository(opts CacheOptions) CacheRepository {
	if opts.MaxSize <= 0 {
		opts.MaxSize = 1000
	}
	r := &cacheRepository{
		local:     ccache.New(ccache.Configure[[]byte]().MaxSize(opts.MaxSize)),
		localTTL:  opts.LocalTTL,
		sharedTTL: opts.SharedTTL,
	}
	if opts.MemcachedHost != "" {
		r.shared = memcache.New(opts.MemcachedHost)
		r.shared.Timeout = 200 * time.Millisecond
		log.Info().Str("host", opts.MemcachedHost).Msg("Result cache using memcached")
	} else {
		log.Info().Msg("Result cache running local only")
	}
	return r
}

func (r *cacheRepository) Key(plan query.Plan) string {
	sum := sha256.Sum256([]byte(plan.Key()))
	return "search:" + plan.Endpoint + ":g" + strconv.FormatUint(r.generation(), 10) + ":" + hex.EncodeToString(sum[:])
}

// generation usa el contador compartido si existe, así todas las instancias
// coinciden
func (r *cacheRepository) generation() uint64 {
	if r.shared != nil {
		item, err := r.shared.Get(generationKey)
		switch {
		case err == nil:
			if n, perr := strconv.ParseUint(string(item.Value), 10, 64); perr == nil {
				return n
			}
		case !errors.Is(err, memcache.ErrCacheMiss):
			log.Warn().Err(err).Msg("Reading cache generation failed")
		}
	}
	return r.localGen.Load()
}

func (r *cacheRepository) Get(key string) ([]byte, bool) {
	if item := r.local.Get(key); item != nil && !item.Expired() {
		log.Debug().Str("key", key).Msg("Cache hit (local)")
		return item.Value(), true
	}
	if r.shared == nil {
		return nil, false
	}

	item, err := r.shared.Get(key)
	if err != nil {
		if !errors.Is(err, memcache.ErrCacheMiss) {
			log.Warn().Err(err).Str("key", key).Msg("Memcached get failed")
		}
		return nil, false
	}
	r.local.Set(key, item.Value, r.localTTL)
	log.Debug().Str("key", key).Msg("Cache hit (memcached)")
	return item.Value, true
}

func (r *cacheRepository) Set(key string, value []byte) {
	r.local.Set(key, value, r.localTTL)
	if r.shared == nil {
		return
	}
	err := r.shared.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: int32(r.sharedTTL / time.Second),
	})
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Memcached set failed")
	}
}

func (r *cacheRepository) Invalidate() {
	r.local.Clear()
	gen := r.localGen.Add(1)

	if r.shared != nil {
		if _, err := r.shared.Increment(generationKey, 1); err != nil {
			if !errors.Is(err, memcache.ErrCacheMiss) {
				log.Warn().Err(err).Msg("Bumping cache generation failed")
				return
			}
			// Una semilla basada en el reloj no choca con generaciones ya
			// desalojadas
			seed := &memcache.Item{Key: generationKey, Value: []byte(strconv.FormatInt(time.Now().UnixNano(), 10))}
			if err := r.shared.Add(seed); err != nil && !errors.Is(err, memcache.ErrNotStored) {
				log.Warn().Err(err).Msg("Seeding cache generation failed")
				return
			}
		}
	}
	log.Info().Uint64("local_generation", gen).Msg("Search cache invalidated")
}

// noopCache se usa cuando la cache está desactivada
type noopCache struct{}

// NewNoopCache crea una cache que nunca guarda nada
func NewNoopCache() CacheRepository { return noopCache{} }

func (noopCache) Key(plan query.Plan) string { return plan.Key() }

func (noopCache) Get(string) ([]byte, bool) { return nil, false }

func (noopCache) Set(string, []byte) {}

func (noopCache) Invalidate() {}
