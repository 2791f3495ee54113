// Package rpc answers the requests of an authenticated game client.
package rpc

import (
	"context"

	"github.com/sessamekesh/waygate/internal/obs"
	"github.com/sessamekesh/waygate/pkg/connection"
	"github.com/sessamekesh/waygate/pkg/message"
	"github.com/sessamekesh/waygate/pkg/session"
	"github.com/sessamekesh/waygate/pkg/store"
	"go.uber.org/zap"
)

// Announcement is one entry of the announcement list shown on the title
// screen.
type Announcement struct {
	Title       string `mapstructure:"title"`
	Body        string `mapstructure:"body"`
	PublishedAt uint64 `mapstructure:"published_at"`
}

type HandlerParams struct {
	Store         store.Store
	Announcements []Announcement

	Logger *zap.Logger
}

type Handler struct {
	store         store.Store
	announcements []message.AnnounceMessage
	log           *zap.Logger
}

var _ connection.Handler = (*Handler)(nil)

func CreateHandler(params HandlerParams) *Handler {
	announcements := make([]message.AnnounceMessage, 0, len(params.Announcements))
	for i, a := range params.Announcements {
		announcements = append(announcements, message.AnnounceMessage{
			Index:       uint32(i),
			Order:       uint32(i),
			Unk1:        1,
			Title:       a.Title,
			Body:        a.Body,
			PublishedAt: a.PublishedAt,
		})
	}

	return &Handler{
		store:         params.Store,
		announcements: announcements,
		log:           obs.DefaultLogger(params.Logger).With(zap.String("component", "rpc")),
	}
}

func (h *Handler) Handle(ctx context.Context, s *session.ClientSession, req message.RequestParams) (message.ResponseParams, error) {
	switch r := req.(type) {
	case message.DeleteSessionRequest:
		return message.DeleteSessionResponse{}, nil
	case message.ServerPingRequest:
		return message.ServerPingResponse{}, nil
	case message.CheckAliveRequest:
		return message.CheckAliveResponse{}, nil

	case message.GetAnnounceMessageListRequest:
		return h.getAnnounceMessageList(r), nil

	case message.UpdateLoginPlayerCharacterRequest:
		return message.UpdateLoginPlayerCharacterResponse{}, nil
	case message.UpdatePlayerStatusRequest:
		h.updatePlayerStatus(s, &r)
		return message.UpdatePlayerStatusResponse{}, nil

	case message.UseItemLogRequest:
		h.log.Debug("Item use", zap.Int32("playerId", s.PlayerID), zap.Int("items", len(r.UsedItems)))
		return message.UseItemLogResponse{}, nil
	case message.GetItemLogRequest:
		h.log.Debug("Item pickup", zap.Int32("playerId", s.PlayerID), zap.Int("items", len(r.AcquiredItems)))
		return message.GetItemLogResponse{}, nil
	case message.KillEnemyLogRequest:
		h.log.Debug("Enemies killed", zap.Int32("playerId", s.PlayerID), zap.Int("enemies", len(r.KilledEnemies)))
		return message.KillEnemyLogResponse{}, nil

	case message.CreateMatchingTicketRequest:
		return message.CreateMatchingTicketResponse{}, nil
	case message.PollMatchingTicketRequest:
		return message.PollMatchingTicketResponse{Unk0: 0}, nil

	case message.RegisterUGCRequest:
		return message.RegisterUGCResponse{UgcCode: ""}, nil

	case message.CreateBloodMessageRequest:
		return h.createBloodMessage(ctx, s, &r)
	case message.GetBloodMessageListRequest:
		return h.getBloodMessageList(ctx, &r)
	case message.EvaluateBloodMessageRequest:
		return h.evaluateBloodMessage(ctx, &r)
	case message.RemoveBloodMessageRequest:
		return h.removeBloodMessage(ctx, s, &r)
	case message.ReentryBloodMessageRequest:
		return h.reentryBloodMessage(ctx, &r)

	case message.CreateBloodstainRequest:
		return h.createBloodstain(ctx, s, &r)
	case message.GetBloodstainListRequest:
		return h.getBloodstainList(ctx, &r)
	case message.GetDeadingGhostRequest:
		return h.getDeadingGhost(ctx, &r)

	case message.CreateGhostDataRequest:
		return h.createGhostData(ctx, s, &r)
	case message.GetGhostDataListRequest:
		return h.getGhostDataList(ctx, &r)

	case message.GrUploadPlayerEquipmentsRequest:
		return h.uploadPlayerEquipments(ctx, s, &r)
	case message.GrGetPlayerEquipmentsRequest:
		return h.getPlayerEquipments(ctx, &r)
	}

	if resp, ok := unitLogResponse(req); ok {
		h.log.Debug("Client log", zap.Int32("playerId", s.PlayerID), zap.String("operation", message.RequestName(req)))
		return resp, nil
	}

	return nil, connection.NoHandler(message.RequestName(req))
}

func (h *Handler) getAnnounceMessageList(req message.GetAnnounceMessageListRequest) message.GetAnnounceMessageListResponse {
	list := h.announcements
	if req.MaxEntries > 0 && int(req.MaxEntries) < len(list) {
		list = list[:req.MaxEntries]
	}
	return message.GetAnnounceMessageListResponse{
		List1: append([]message.AnnounceMessage(nil), list...),
		List2: []message.AnnounceMessage{},
	}
}

func (h *Handler) updatePlayerStatus(s *session.ClientSession, req *message.UpdatePlayerStatusRequest) {
	invadeable := req.Character.OnlineActivity == message.OnlineActivity_Invadeable
	matching := session.MatchingFromStatus(req)

	s.UpdateGameSession(func(game *session.GameSession) {
		game.Invadeable = invadeable
		game.Matching = matching
	})
}

// unitLogResponse acks the parameterless telemetry operations.
func unitLogResponse(req message.RequestParams) (message.ResponseParams, bool) {
	switch req.(type) {
	case message.RegisterCharacterLogRequest:
		return message.RegisterCharacterLogResponse{}, true
	case message.SelectCharacterLogRequest:
		return message.SelectCharacterLogResponse{}, true
	case message.DieLogRequest:
		return message.DieLogResponse{}, true
	case message.UseMagicLogRequest:
		return message.UseMagicLogResponse{}, true
	case message.UseGestureLogRequest:
		return message.UseGestureLogResponse{}, true
	case message.PurchaseItemLogRequest:
		return message.PurchaseItemLogResponse{}, true
	case message.DropItemLogRequest:
		return message.DropItemLogResponse{}, true
	case message.LeaveItemLogRequest:
		return message.LeaveItemLogResponse{}, true
	case message.SaleItemLogRequest:
		return message.SaleItemLogResponse{}, true
	case message.CreateItemLogRequest:
		return message.CreateItemLogResponse{}, true
	case message.SummonBuddyLogRequest:
		return message.SummonBuddyLogResponse{}, true
	case message.KillBossLogRequest:
		return message.KillBossLogResponse{}, true
	case message.GlobalEventLogRequest:
		return message.GlobalEventLogResponse{}, true
	case message.DiscoverMapPointLogRequest:
		return message.DiscoverMapPointLogResponse{}, true
	case message.JoinMultiplayLogRequest:
		return message.JoinMultiplayLogResponse{}, true
	case message.LeaveMultiplayLogRequest:
		return message.LeaveMultiplayLogResponse{}, true
	case message.CreateSignResultLogRequest:
		return message.CreateSignResultLogResponse{}, true
	case message.SummonSignResultLogRequest:
		return message.SummonSignResultLogResponse{}, true
	case message.BreakInResultLogRequest:
		return message.BreakInResultLogResponse{}, true
	case message.VisitResultLogRequest:
		return message.VisitResultLogResponse{}, true
	case message.QuickMatchResultLogRequest:
		return message.QuickMatchResultLogResponse{}, true
	case message.QuickMatchEndLogRequest:
		return message.QuickMatchEndLogResponse{}, true
	case message.SystemOptionLogRequest:
		return message.SystemOptionLogResponse{}, true
	}
	return nil, false
}
