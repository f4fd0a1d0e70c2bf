package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dskvich/assistant-chat/pkg/domain"
)

type key struct {
	errorWriter
	keys KeyChecker
}

func NewKey(keys KeyChecker) *key {
	return &key{keys: keys}
}

type setKeyRequest struct {
	APIKey string `json:"api_key"`
}

type keyStatus struct {
	HasKey        bool `json:"has_key"`
	KeyConfigured bool `json:"key_configured"`
}

func (k *key) Set(w http.ResponseWriter, r *http.Request) {
	var req setKeyRequest
	if err := decodeJSON(r, &req); err != nil {
		k.fail(w, r, err)
		return
	}

	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" {
		k.fail(w, r, domain.ErrMissingAPIKey)
		return
	}

	sess := session(r)
	sess.SetAPIKey(apiKey)
	slog.InfoContext(r.Context(), "API key set for session")

	k.WriteSuccessResponse(w, keyStatus{HasKey: true, KeyConfigured: k.keys.KeyConfigured()})
}

func (k *key) Status(w http.ResponseWriter, r *http.Request) {
	k.WriteSuccessResponse(w, keyStatus{
		HasKey:        k.keys.HasKey(session(r)),
		KeyConfigured: k.keys.KeyConfigured(),
	})
}
