package rpc

import (
	"context"
	"fmt"

	"github.com/sessamekesh/waygate/pkg/message"
	"github.com/sessamekesh/waygate/pkg/session"
	"github.com/sessamekesh/waygate/pkg/store"
)

func (h *Handler) createGhostData(ctx context.Context, s *session.ClientSession, req *message.CreateGhostDataRequest) (message.ResponseParams, error) {
	id, err := h.store.CreateGhostData(ctx, store.GhostData{
		PlayerID:       s.PlayerID,
		SessionID:      s.SessionID,
		ReplayData:     req.ReplayData,
		Area:           req.Area,
		GroupPasswords: req.GroupPasswords,
	})
	if err != nil {
		return nil, fmt.Errorf("create ghost data: %w", err)
	}

	return message.CreateGhostDataResponse{
		Identifier: message.ObjectIdentifier{ObjectID: id, SecondaryID: s.SessionID},
	}, nil
}

func (h *Handler) getGhostDataList(ctx context.Context, req *message.GetGhostDataListRequest) (message.ResponseParams, error) {
	ghosts, err := h.store.GetGhostData(ctx, req.SearchAreas, store.GhostDataListLimit)
	if err != nil {
		return nil, fmt.Errorf("get ghost data: %w", err)
	}

	entries := make([]message.GhostDataListEntry, 0, len(ghosts))
	for i := range ghosts {
		g := &ghosts[i]
		passwords := g.GroupPasswords
		if passwords == nil {
			passwords = []string{}
		}
		entries = append(entries, message.GhostDataListEntry{
			Area:           g.Area,
			Identifier:     g.Identifier(),
			ReplayData:     g.ReplayData,
			GroupPasswords: passwords,
		})
	}
	return message.GetGhostDataListResponse{Entries: entries}, nil
}
