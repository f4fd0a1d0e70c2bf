package services

import (
	"github.com/samber/lo"

	"github.com/dskvich/assistant-chat/pkg/domain"
)

type clientProvider struct {
	factory    ClientFactory
	defaultKey string
}

// NewClientProvider resolves the API client of a session. A key typed in the
// browser wins over the configured one.
func NewClientProvider(factory ClientFactory, defaultKey string) *clientProvider {
	return &clientProvider{
		factory:    factory,
		defaultKey: defaultKey,
	}
}

func (p *clientProvider) HasKey(sess *domain.Session) bool {
	return p.key(sess) != ""
}

// KeyConfigured reports whether a key is available without asking the user.
func (p *clientProvider) KeyConfigured() bool {
	return p.defaultKey != ""
}

func (p *clientProvider) ForSession(sess *domain.Session) (AssistantAPI, error) {
	key := p.key(sess)
	if key == "" {
		return nil, domain.ErrMissingAPIKey
	}
	return p.factory(key)
}

func (p *clientProvider) key(sess *domain.Session) string {
	key, _ := lo.Coalesce(sess.APIKey(), p.defaultKey)
	return key
}
