// Package cache keeps difficulty attributes in sqlite so repeated CLI runs
// against the same beatmap skip parsing.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/DAYGoodTime/rosu-native/internal/game"
	"github.com/DAYGoodTime/rosu-native/internal/score"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type Cache struct {
	db *sql.DB
}

// Key identifies one set of attributes. A beatmap edited on disk gets a
// new ModTime and so a new key.
type Key struct {
	Path    string
	ModTime int64
	Mods    game.Mods
}

// KeyFor stats path and builds its key.
func KeyFor(path string, mods game.Mods) (Key, error) {
	abs, err := filepath.Abs(path)
	if nil != err {
		return Key{}, errors.Wrap(err, "resolve path")
	}
	info, err := os.Stat(abs)
	if nil != err {
		return Key{}, errors.Wrap(err, "stat beatmap")
	}
	return Key{Path: abs, ModTime: info.ModTime().UnixNano(), Mods: mods}, nil
}

func (k Key) sum() string {
	sum := sha256.Sum256([]byte(k.Path + "\x00" + strconv.FormatInt(k.ModTime, 10)))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Open opens or creates the sqlite database at dsn.
func Open(dsn string) (*Cache, error) {
	db, err := sql.Open("sqlite3", dsn)
	if nil != err {
		return nil, errors.Wrap(err, "open cache")
	}

	initStatement := `
	create table if not exists attributes
	  (
		  sum text not null,
		  mods integer not null,
		  path text,
		  attrs blob,
		  primary key (sum, mods)
	  );
	`
	if _, err := db.Exec(initStatement); nil != err {
		db.Close()
		return nil, errors.Wrap(err, "create cache table")
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	if nil == c.db {
		return nil
	}
	return c.db.Close()
}

// Get returns nil, nil when nothing is stored under key.
func (c *Cache) Get(ctx context.Context, key Key) (*score.Attributes, error) {
	var data []byte
	err := c.db.QueryRowContext(ctx,
		"select attrs from attributes where sum = ? and mods = ?", key.sum(), uint32(key.Mods),
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if nil != err {
		return nil, errors.Wrap(err, "load attributes")
	}
	attrs := &score.Attributes{}
	if err := json.Unmarshal(data, attrs); nil != err {
		return nil, errors.Wrap(err, "unmarshal attributes")
	}
	return attrs, nil
}

func (c *Cache) Put(ctx context.Context, key Key, attrs *score.Attributes) error {
	data, err := json.Marshal(attrs)
	if nil != err {
		return errors.Wrap(err, "marshal attributes")
	}
	_, err = c.db.ExecContext(ctx,
		"insert or replace into attributes(sum, mods, path, attrs) values(?, ?, ?, ?)",
		key.sum(), uint32(key.Mods), key.Path, data,
	)
	return errors.Wrap(err, "save attributes")
}

// Paths adapts c to the path based lookups a pipeline makes.
type Paths struct {
	*Cache
}

func (p Paths) Get(ctx context.Context, path string, mods game.Mods) (*score.Attributes, error) {
	key, err := KeyFor(path, mods)
	if nil != err {
		return nil, err
	}
	return p.Cache.Get(ctx, key)
}

func (p Paths) Put(ctx context.Context, path string, mods game.Mods, attrs *score.Attributes) error {
	key, err := KeyFor(path, mods)
	if nil != err {
		return err
	}
	return p.Cache.Put(ctx, key, attrs)
}
