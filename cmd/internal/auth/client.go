package auth

import (
	"sync"

	"github.com/labstack/gommon/log"
)

// Client is the session side of the backend contract: one current session,
// bootstrapped from persisted state, replaced on every sign-in/sign-out, with
// change notifications pushed to registered listeners.
type Client struct {
	mu       sync.Mutex
	provider Provider
	tokens   *TokenFile
	current  *Session
	restored bool

	nextSub   int
	listeners map[int]func(*Session)
}

func NewClient(provider Provider, tokens *TokenFile) *Client {
	return &Client{
		provider:  provider,
		tokens:    tokens,
		listeners: make(map[int]func(*Session)),
	}
}

// Session returns the current session, or nil when signed out. The first
// call restores persisted state through the provider; an invalid or expired
// persisted token resolves to nil rather than an error.
func (c *Client) Session() (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.restored {
		return c.current, nil
	}
	c.restored = true

	stored, err := c.tokens.Load()
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, nil
	}

	sess, err := c.provider.Restore(*stored)
	if err != nil {
		log.Infof("persisted session rejected, signing out: %v", err)
		_ = c.tokens.Clear()
		return nil, nil
	}

	c.current = sess
	return c.current, nil
}

// SignIn exchanges credentials for a fresh session, persists it, and
// notifies listeners.
func (c *Client) SignIn(identifier, secret string) (*Session, error) {
	sess, err := c.provider.Exchange(identifier, secret)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.current = sess
	c.restored = true
	if err := c.tokens.Store(sess); err != nil {
		log.Errorf("failed to persist session: %v", err)
	}
	c.mu.Unlock()

	c.notify(sess)
	return sess, nil
}

// SignOut revokes the current session best-effort. The local state is
// cleared and listeners are notified even when revocation fails.
func (c *Client) SignOut() error {
	c.mu.Lock()
	sess := c.current
	c.current = nil
	c.restored = true
	_ = c.tokens.Clear()
	c.mu.Unlock()

	if sess != nil {
		if err := c.provider.Revoke(sess.AccessToken); err != nil {
			log.Errorf("failed to revoke session: %v", err)
		}
	}

	c.notify(nil)
	return nil
}

// OnSessionChange registers a listener invoked with the new session (or nil)
// after every change. The returned function unsubscribes.
func (c *Client) OnSessionChange(fn func(*Session)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Client) notify(sess *Session) {
	c.mu.Lock()
	fns := make([]func(*Session), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(sess)
	}
}
