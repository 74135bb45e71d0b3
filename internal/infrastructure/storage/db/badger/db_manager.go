package dbbadger

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/JerryMichels/bitpay-app/internal/core/ports"
	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
)

// repoManager holds all the badgerhold stores in a single data structure.
type repoManager struct {
	store *badgerhold.Store

	keyRepository      domain.KeyRepository
	settingsRepository domain.SettingsRepository
	tokenRepository    domain.TokenRepository
}

// NewRepoManager opens (or creates if not exists) the badger store on disk.
// It expects a base data dir and an optional logger. An empty dir makes the
// store to be kept in memory.
func NewRepoManager(
	baseDbDir string, logger badger.Logger,
) (ports.RepoManager, error) {
	var walletDir string
	if len(baseDbDir) > 0 {
		walletDir = filepath.Join(baseDbDir, "wallet")
	}

	store, err := OpenStore(walletDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening wallet db: %w", err)
	}

	return &repoManager{
		store:              store,
		keyRepository:      NewKeyRepositoryImpl(store),
		settingsRepository: NewSettingsRepositoryImpl(store),
		tokenRepository:    NewTokenRepositoryImpl(store),
	}, nil
}

func (r *repoManager) KeyRepository() domain.KeyRepository {
	return r.keyRepository
}

func (r *repoManager) SettingsRepository() domain.SettingsRepository {
	return r.settingsRepository
}

func (r *repoManager) TokenRepository() domain.TokenRepository {
	return r.tokenRepository
}

func (r *repoManager) Close() {
	r.store.Close()
}

// OpenStore opens the badgerhold store at dbDir, kept in memory if dbDir is
// empty. On disk stores get their value log garbage collected periodically.
func OpenStore(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(30 * time.Minute)

		go func() {
			for {
				<-ticker.C
				if err := db.Badger().RunValueLogGC(0.5); err != nil &&
					err != badger.ErrNoRewrite {
					log.Error(err)
				}
			}
		}()
	}

	return db, nil
}
