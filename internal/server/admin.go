package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/crossstars/crossstars-server-go/internal/catalog"
	"go.uber.org/zap"
)

// adminCardRequest is the authoring-form payload. HP/ATK fields are only
// read for leader cards, matching the data-entry form this replaces.
type adminCardRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Cost        int    `json:"cost"`
	HP          int    `json:"hp,omitempty"`
	ATK         int    `json:"atk,omitempty"`
	AwakenedHP  int    `json:"awakened_hp,omitempty"`
	AwakenedATK int    `json:"awakened_atk,omitempty"`
	EffectText  string `json:"effect_text,omitempty"`
}

func (s *Server) handleUpsertCard(w http.ResponseWriter, r *http.Request) {
	var req adminCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid card body: %w", err))
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("card id and name are required"))
		return
	}

	def := &catalog.CardDefinition{
		ID:         req.ID,
		Name:       req.Name,
		Type:       catalog.CardType(req.Type),
		Cost:       req.Cost,
		EffectText: req.EffectText,
	}
	if def.Type == catalog.TypeLeader {
		def.Leader = &catalog.LeaderStats{
			BaseHP:      req.HP,
			BaseATK:     req.ATK,
			AwakenedHP:  req.AwakenedHP,
			AwakenedATK: req.AwakenedATK,
		}
	}

	if err := s.store.Upsert(r.Context(), def); err != nil {
		if errors.Is(err, catalog.ErrUnavailable) {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.logger.Info("card definition saved via admin endpoint",
		zap.String("card_id", def.ID),
		zap.String("name", def.Name),
	)
	writeJSON(w, http.StatusOK, def)
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	defs, err := s.store.List(r.Context())
	if err != nil {
		if errors.Is(err, catalog.ErrUnavailable) {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, defs)
}
