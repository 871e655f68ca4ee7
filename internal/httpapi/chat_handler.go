package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fitquality/storefront/internal/chat"
)

type ChatHandler struct {
	store chat.Store
}

func NewChatHandler(store chat.Store) *ChatHandler {
	return &ChatHandler{store: store}
}

type SendMessageRequestDTO struct {
	Text     string `json:"text,omitempty"`
	AudioURI string `json:"audio_uri,omitempty"`
}

// Counterparts lists the peers the caller has a conversation with.
func (h *ChatHandler) Counterparts(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "no active session")
		return
	}

	peers, err := h.store.Counterparts(r.Context(), identity.Email)
	if err != nil {
		log.Printf("failed to list chat counterparts for %s: %v", identity.Email, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load conversations")
		return
	}
	if peers == nil {
		peers = []string{}
	}
	respondJSON(w, http.StatusOK, peers)
}

func (h *ChatHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "no active session")
		return
	}
	peer := chi.URLParam(r, "peer")

	messages, err := h.store.Conversation(r.Context(), identity.Email, peer)
	if err != nil {
		log.Printf("failed to load conversation %s/%s: %v", identity.Email, peer, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load conversation")
		return
	}
	if messages == nil {
		messages = []chat.Message{}
	}
	respondJSON(w, http.StatusOK, messages)
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "no active session")
		return
	}
	peer := chi.URLParam(r, "peer")

	var req SendMessageRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	msg := &chat.Message{
		SenderEmail:   identity.Email,
		ReceiverEmail: peer,
		Text:          req.Text,
		AudioURI:      req.AudioURI,
	}
	err := h.store.Send(r.Context(), msg)
	if errors.Is(err, chat.ErrEmptyMessage) {
		respondError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}
	if err != nil {
		log.Printf("failed to send message %s/%s: %v", identity.Email, peer, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not send message")
		return
	}
	respondJSON(w, http.StatusCreated, msg)
}
