package session

import (
	"context"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
)

// Flash carries the outcome of a form submission to the page rendered
// after the redirect. It is read once.
type Flash struct {
	Message    string
	Identifier string
}

const flashKey = "flash"

func init() {
	gob.Register(Flash{})
}

const sessionTTL = 30 * time.Minute

type Manager struct {
	*scs.SessionManager
}

func NewManager(secure bool) *Manager {
	return &Manager{SessionManager: newSessionManager(secure)}
}

func newSessionManager(secure bool) *scs.SessionManager {
	manager := scs.New()
	manager.Store = memstore.New()
	manager.Lifetime = sessionTTL
	manager.Cookie.Name = "ihf_session"
	manager.Cookie.Path = "/"
	manager.Cookie.HttpOnly = true
	manager.Cookie.SameSite = http.SameSiteLaxMode
	manager.Cookie.Secure = secure
	return manager
}

func (m *Manager) PutFlash(ctx context.Context, f Flash) {
	m.Put(ctx, flashKey, f)
}

// PopFlash returns and removes the pending flash.
func (m *Manager) PopFlash(ctx context.Context) (Flash, bool) {
	f, ok := m.Pop(ctx, flashKey).(Flash)
	if !ok || f.Message == "" {
		return Flash{}, false
	}
	return f, true
}
