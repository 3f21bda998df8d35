// ABOUTME: Charm KV client wrapper for habit storage.
// ABOUTME: Implements kv.Store with automatic cloud sync after every write.
package charm

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/charmbracelet/log"
	"github.com/dgraph-io/badger/v3"
	habitkv "github.com/harperreed/habits/internal/kv"
)

const (
	// DefaultDBName is the Charm KV database holding habit data.
	DefaultDBName = "habits"
	// DefaultHost is the Charm server used for sync.
	DefaultHost = "charm.2389.dev"
)

// ErrReadOnly is returned by writes while another process holds the database lock.
var ErrReadOnly = errors.New("cannot write: database is locked by another process (MCP server?)")

var (
	globalClient *Client
	clientOnce   sync.Once
	clientErr    error
)

// Options selects the Charm database and server.
type Options struct {
	DBName string
	Host   string
	Logger *log.Logger
}

// Client is a kv.Store backed by Charm KV.
type Client struct {
	kv       *kv.KV
	autoSync bool
	logger   *log.Logger
	mu       sync.RWMutex
}

// Compile-time check that Client implements kv.Store.
var _ habitkv.Store = (*Client)(nil)

// InitClient initializes the global Charm client.
// Thread-safe; only the first call's options take effect.
func InitClient(opts Options) (*Client, error) {
	clientOnce.Do(func() {
		if opts.DBName == "" {
			opts.DBName = DefaultDBName
		}
		if opts.Host == "" {
			opts.Host = DefaultHost
		}
		if opts.Logger == nil {
			opts.Logger = log.New(os.Stderr)
		}

		// Set server before opening KV
		if os.Getenv("CHARM_HOST") == "" {
			if err := os.Setenv("CHARM_HOST", opts.Host); err != nil {
				clientErr = err
				return
			}
		}

		db, err := kv.OpenWithDefaultsFallback(opts.DBName)
		if err != nil {
			clientErr = fmt.Errorf("open charm kv %s: %w", opts.DBName, err)
			return
		}

		globalClient = &Client{
			kv:       db,
			autoSync: true,
			logger:   opts.Logger.WithPrefix("charm"),
		}

		// Pull remote data on startup (skip in read-only mode)
		if !db.IsReadOnly() {
			if err := db.Sync(); err != nil {
				globalClient.logger.Warn("initial sync failed", "err", err)
			}
		}
	})

	return globalClient, clientErr
}

// Close closes the KV database connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}

// IsReadOnly returns true if the database is open in read-only mode.
// This happens when another process (like an MCP server) holds the lock.
func (c *Client) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (c *Client) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

// syncIfEnabled calls Sync if autoSync is enabled. A failed sync does not
// fail the write: the value is already durable locally.
func (c *Client) syncIfEnabled() {
	if c.autoSync && !c.kv.IsReadOnly() {
		if err := c.kv.Sync(); err != nil {
			c.logger.Warn("sync after write failed", "err", err)
		}
	}
}

// SetAutoSync enables or disables automatic sync after writes.
func (c *Client) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// ID returns the Charm user ID for the current account.
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

// Get returns the value stored under key, or kv.ErrNotFound.
func (c *Client) Get(key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := c.kv.Get([]byte(key))
	if isNotFound(err) {
		return nil, habitkv.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return data, nil
}

// Set stores a value with the given key.
func (c *Client) Set(key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}

	if err := c.kv.Set([]byte(key), data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	c.syncIfEnabled()
	return nil
}

// isNotFound reports whether err is badger's missing-key error.
func isNotFound(err error) bool {
	return errors.Is(err, badger.ErrKeyNotFound)
}
