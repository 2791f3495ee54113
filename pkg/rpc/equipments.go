package rpc

import (
	"context"
	"fmt"

	"github.com/sessamekesh/waygate/pkg/message"
	"github.com/sessamekesh/waygate/pkg/session"
	"github.com/sessamekesh/waygate/pkg/store"
)

func (h *Handler) uploadPlayerEquipments(ctx context.Context, s *session.ClientSession, req *message.GrUploadPlayerEquipmentsRequest) (message.ResponseParams, error) {
	_, err := h.store.CreatePlayerEquipments(ctx, store.PlayerEquipments{
		PlayerID:  s.PlayerID,
		SessionID: s.SessionID,
		PoolType:  req.PoolType,
		Data:      req.Data,
	})
	if err != nil {
		return nil, fmt.Errorf("upload equipments: %w", err)
	}
	return message.GrUploadPlayerEquipmentsResponse{}, nil
}

// getPlayerEquipments lists the newest loadout of up to Count players in
// the requested pool.
func (h *Handler) getPlayerEquipments(ctx context.Context, req *message.GrGetPlayerEquipmentsRequest) (message.ResponseParams, error) {
	equipments, err := h.store.GetPlayerEquipments(ctx, req.PoolType, store.PlayerEquipmentsListLimit)
	if err != nil {
		return nil, fmt.Errorf("get equipments: %w", err)
	}
	if int(req.Count) < len(equipments) {
		equipments = equipments[:req.Count]
	}

	entries := make([]message.PlayerEquipmentsEntry, 0, len(equipments))
	for _, e := range equipments {
		entries = append(entries, message.PlayerEquipmentsEntry{
			EntryID: uint32(e.ID),
			Data:    e.Data,
		})
	}
	return message.GrGetPlayerEquipmentsResponse{Entries: entries}, nil
}
