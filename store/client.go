// ABOUTME: Charm KV client wrapper exposing named persistence slots
// ABOUTME: Thread-safe wrapper over badger-backed charm kv with test injection
package store

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/kv"
)

// Slot names. Each holds one JSON-serialized collection. The legacy slots
// are consulted read-only during startup migration and never written.
const (
	SlotHistory    = "history"
	SlotSignatures = "signatures"
	SlotCategories = "categories"
	SlotTemplates  = "templates"

	SlotLegacyCategories = "custom-categories"
	SlotLegacyTemplates  = "custom-templates"
)

// Client wraps charm KV with config and slot helpers. Pass it by reference
// into the state layer so tests can substitute an in-memory backend.
type Client struct {
	kv         *kv.KV
	config     *Config
	mu         sync.RWMutex
	testClient *testClient // Used for testing without server dependency
}

// Open creates a client against the configured charm KV database.
func Open() (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load store config: %w", err)
	}

	// Set charm host before opening KV
	_ = os.Setenv("CHARM_HOST", cfg.Host)

	db, err := kv.OpenWithDefaults(AppName)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}

	c := &Client{
		kv:     db,
		config: cfg,
	}

	// Sync on startup to pull remote changes
	if cfg.AutoSync {
		_ = db.Sync()
	}

	return c, nil
}

// Close releases the KV store.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	// charm/kv doesn't expose Close() directly; the underlying BadgerDB
	// is cleaned up on process exit.
	return nil
}

// Config returns the client's config.
func (c *Client) Config() *Config {
	if c.testClient != nil {
		return c.testClient.Config()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// GetSlot returns the raw JSON blob stored under a slot name. A missing
// slot returns (nil, false, nil); corrupt blobs are the caller's problem,
// shape tolerance lives in the state bootstrap.
func (c *Client) GetSlot(slot string) ([]byte, bool, error) {
	data, err := c.get([]byte(slot))
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if len(data) == 0 {
		return nil, false, nil
	}
	return data, true, nil
}

// SetSlot stores a JSON blob under a slot name, write-through.
func (c *Client) SetSlot(slot string, data []byte) error {
	return c.set([]byte(slot), data)
}

func (c *Client) get(key []byte) ([]byte, error) {
	if c.testClient != nil {
		return c.testClient.Get(key)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.kv.Get(key)
}

func (c *Client) set(key, value []byte) error {
	if c.testClient != nil {
		return c.testClient.Set(key, value)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Set(key, value); err != nil {
		return err
	}

	// Sync while still holding lock to avoid race condition
	if c.config.AutoSync {
		_ = c.kv.Sync()
	}
	return nil
}

// Sync performs a manual sync with the charm server.
func (c *Client) Sync() error {
	if c.testClient != nil {
		return nil // No-op for test client
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Sync()
}

// Reset wipes all data from the KV store (use with caution!)
func (c *Client) Reset() error {
	if c.testClient != nil {
		return c.testClient.Reset()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}
