// Package storage keeps the client's persisted state in the local sqlite
// store: the locale preference and the sealed session credentials.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/adearn/internal/client/gateway"
	"github.com/dmitrijs2005/adearn/internal/client/i18n"
	"github.com/dmitrijs2005/adearn/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/adearn/internal/common"
	"github.com/dmitrijs2005/adearn/internal/cryptox"
	"github.com/dmitrijs2005/adearn/internal/dbx"
	"github.com/dmitrijs2005/adearn/internal/filex"
)

const (
	KeyLocale     = "app_lang"
	KeySession    = "session"
	KeyDeviceSalt = "device_salt"

	DatabaseFile     = "adearn.db"
	DeviceSecretFile = "device.key"

	saltSize = 16
)

type Store struct {
	db   *sql.DB
	meta metadata.Repository
	key  []byte
}

var _ gateway.SessionStore = (*Store)(nil)

// Open prepares the store under dataDir: the database file, its migrations
// and the device key used to seal credentials.
func Open(ctx context.Context, dataDir string) (*Store, error) {
	dataDir, err := filex.EnsureDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	db, err := OpenDatabase(ctx, filepath.Join(dataDir, DatabaseFile))
	if err != nil {
		return nil, err
	}

	secret, err := cryptox.LoadOrCreateDeviceSecret(filepath.Join(dataDir, DeviceSecretFile))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	s, err := New(ctx, db, secret)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an already migrated database. The sealing key is derived from
// secret and a salt kept in the database.
func New(ctx context.Context, db *sql.DB, secret []byte) (*Store, error) {
	s := &Store{db: db, meta: metadata.NewSQLiteRepository(db)}

	salt, err := s.meta.Get(ctx, KeyDeviceSalt)
	if err != nil {
		return nil, err
	}
	if len(salt) != saltSize {
		salt = common.GenerateRandByteArray(saltSize)
		if err := s.meta.Set(ctx, KeyDeviceSalt, salt); err != nil {
			return nil, err
		}
	}

	s.key = cryptox.DeriveKey(secret, salt)
	return s, nil
}

func (s *Store) Close() error {
	common.WipeByteArray(s.key)
	return s.db.Close()
}

// LoadLocale returns the stored locale choice; ok is false when none is
// stored or the stored value is no longer supported.
func (s *Store) LoadLocale(ctx context.Context) (i18n.Locale, bool, error) {
	b, err := s.meta.Get(ctx, KeyLocale)
	if err != nil || b == nil {
		return "", false, err
	}
	l, ok := i18n.ParseLocale(string(b))
	return l, ok, nil
}

func (s *Store) SaveLocale(ctx context.Context, l i18n.Locale) error {
	return s.meta.Set(ctx, KeyLocale, []byte(l))
}

func (s *Store) LoadCredentials(ctx context.Context) (*gateway.Credentials, error) {
	sealed, err := s.meta.Get(ctx, KeySession)
	if err != nil || sealed == nil {
		return nil, err
	}

	var c gateway.Credentials
	if err := cryptox.Open(sealed, s.key, &c); err != nil {
		return nil, fmt.Errorf("open stored session: %w", err)
	}
	return &c, nil
}

func (s *Store) SaveCredentials(ctx context.Context, c *gateway.Credentials) error {
	sealed, err := cryptox.Seal(c, s.key)
	if err != nil {
		return fmt.Errorf("seal session: %w", err)
	}
	return s.meta.Set(ctx, KeySession, sealed)
}

func (s *Store) ClearCredentials(ctx context.Context) error {
	return s.meta.Delete(ctx, KeySession)
}

// Reset drops every stored value except the device salt, in one
// transaction.
func (s *Store) Reset(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)

		keys, err := repo.Keys(ctx)
		if err != nil {
			return err
		}
		for _, k := range keys {
			if k == KeyDeviceSalt {
				continue
			}
			if err := repo.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
}
