package rpc

import (
	"context"
	"fmt"

	"github.com/sessamekesh/waygate/pkg/message"
	"github.com/sessamekesh/waygate/pkg/session"
	"github.com/sessamekesh/waygate/pkg/store"
)

func (h *Handler) createBloodstain(ctx context.Context, s *session.ClientSession, req *message.CreateBloodstainRequest) (message.ResponseParams, error) {
	id, err := h.store.CreateBloodstain(ctx, store.Bloodstain{
		PlayerID:          s.PlayerID,
		SessionID:         s.SessionID,
		AdvertisementData: req.AdvertisementData,
		ReplayData:        req.ReplayData,
		Area:              req.Area,
	})
	if err != nil {
		return nil, fmt.Errorf("create bloodstain: %w", err)
	}

	return message.CreateBloodstainResponse{
		Identifier: message.ObjectIdentifier{ObjectID: id, SecondaryID: s.SessionID},
	}, nil
}

func (h *Handler) getBloodstainList(ctx context.Context, req *message.GetBloodstainListRequest) (message.ResponseParams, error) {
	stains, err := h.store.GetBloodstains(ctx, req.SearchAreas, store.BloodstainListLimit)
	if err != nil {
		return nil, fmt.Errorf("get bloodstains: %w", err)
	}

	entries := make([]message.BloodstainListEntry, 0, len(stains))
	for i := range stains {
		b := &stains[i]
		entries = append(entries, message.BloodstainListEntry{
			Area:              b.Area,
			Identifier:        b.Identifier(),
			AdvertisementData: b.AdvertisementData,
			GroupPasswords:    []string{},
		})
	}
	return message.GetBloodstainListResponse{Entries: entries}, nil
}

// getDeadingGhost returns the replay recorded with a bloodstain.
func (h *Handler) getDeadingGhost(ctx context.Context, req *message.GetDeadingGhostRequest) (message.ResponseParams, error) {
	stain, err := h.store.GetBloodstain(ctx, req.Identifier.ObjectID)
	if err != nil {
		return nil, fmt.Errorf("get deading ghost: %w", err)
	}

	return message.GetDeadingGhostResponse{
		Unk0:       0,
		Unk4:       0,
		Identifier: stain.Identifier(),
		ReplayData: stain.ReplayData,
	}, nil
}
