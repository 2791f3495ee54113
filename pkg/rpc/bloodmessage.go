package rpc

import (
	"context"
	"fmt"

	"github.com/sessamekesh/waygate/pkg/message"
	"github.com/sessamekesh/waygate/pkg/session"
	"github.com/sessamekesh/waygate/pkg/store"
	"go.uber.org/zap"
)

func (h *Handler) createBloodMessage(ctx context.Context, s *session.ClientSession, req *message.CreateBloodMessageRequest) (message.ResponseParams, error) {
	id, err := h.store.CreateBloodMessage(ctx, store.BloodMessage{
		PlayerID:    s.PlayerID,
		CharacterID: req.CharacterID,
		SessionID:   s.SessionID,
		Data:        req.Data,
		Area:        req.Area,
	})
	if err != nil {
		return nil, fmt.Errorf("create blood message: %w", err)
	}

	return message.CreateBloodMessageResponse{
		Identifier: message.ObjectIdentifier{ObjectID: id, SecondaryID: s.SessionID},
	}, nil
}

func (h *Handler) getBloodMessageList(ctx context.Context, req *message.GetBloodMessageListRequest) (message.ResponseParams, error) {
	msgs, err := h.store.GetBloodMessages(ctx, req.SearchAreas, store.BloodMessageListLimit)
	if err != nil {
		return nil, fmt.Errorf("get blood messages: %w", err)
	}

	entries := make([]message.BloodMessageListEntry, 0, len(msgs))
	for i := range msgs {
		m := &msgs[i]
		entries = append(entries, message.BloodMessageListEntry{
			PlayerID:       m.PlayerID,
			CharacterID:    m.CharacterID,
			Identifier:     m.Identifier(),
			RatingGood:     m.RatingGood,
			RatingBad:      m.RatingBad,
			Data:           m.Data,
			Area:           m.Area,
			GroupPasswords: []string{},
		})
	}
	return message.GetBloodMessageListResponse{Entries: entries}, nil
}

func (h *Handler) evaluateBloodMessage(ctx context.Context, req *message.EvaluateBloodMessageRequest) (message.ResponseParams, error) {
	if err := h.store.EvaluateBloodMessage(ctx, req.Identifier.ObjectID, req.Rating); err != nil {
		return nil, fmt.Errorf("evaluate blood message %d: %w", req.Identifier.ObjectID, err)
	}
	return message.EvaluateBloodMessageResponse{}, nil
}

func (h *Handler) removeBloodMessage(ctx context.Context, s *session.ClientSession, req *message.RemoveBloodMessageRequest) (message.ResponseParams, error) {
	removed, err := h.store.RemoveBloodMessage(ctx, req.Identifier.ObjectID, s.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("remove blood message %d: %w", req.Identifier.ObjectID, err)
	}
	if !removed {
		h.log.Debug("Blood message not removed", zap.Int32("playerId", s.PlayerID), zap.Int32("messageId", req.Identifier.ObjectID))
	}
	return message.RemoveBloodMessageResponse{}, nil
}

func (h *Handler) reentryBloodMessage(ctx context.Context, req *message.ReentryBloodMessageRequest) (message.ResponseParams, error) {
	ids := make([]int32, 0, len(req.Identifiers))
	for _, id := range req.Identifiers {
		ids = append(ids, id.ObjectID)
	}

	existing, err := h.store.BloodMessagesExist(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("check blood messages: %w", err)
	}
	if existing == nil {
		existing = []message.ObjectIdentifier{}
	}
	return message.ReentryBloodMessageResponse{Identifiers: existing}, nil
}
