package handler

import (
	"net/http"
)

type assistants struct {
	errorWriter
	provider AssistantProvider
}

func NewAssistants(provider AssistantProvider) *assistants {
	return &assistants{provider: provider}
}

type assistantsResponse struct {
	Assistants []assistantItem `json:"assistants"`
	SelectedID string          `json:"selected_id"`
}

type assistantItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type selectAssistantRequest struct {
	AssistantID string `json:"assistant_id"`
}

func (a *assistants) List(w http.ResponseWriter, r *http.Request) {
	sess := session(r)

	list, err := a.provider.List(r.Context(), sess)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	resp := assistantsResponse{
		Assistants: make([]assistantItem, 0, len(list)),
		SelectedID: sess.AssistantID(),
	}
	for _, as := range list {
		resp.Assistants = append(resp.Assistants, assistantItem{ID: as.ID, Name: as.Name})
	}

	a.WriteSuccessResponse(w, resp)
}

func (a *assistants) Select(w http.ResponseWriter, r *http.Request) {
	var req selectAssistantRequest
	if err := decodeJSON(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}

	sess := session(r)
	if err := a.provider.Select(r.Context(), sess, req.AssistantID); err != nil {
		a.fail(w, r, err)
		return
	}

	a.WriteSuccessResponse(w, map[string]string{"selected_id": sess.AssistantID()})
}
