package message

import "github.com/sessamekesh/waygate/pkg/wire"

// RequestParams is the closed set of operations a client can call. Variants
// are the *Request structs below and travel as a u32 discriminant in
// registration order, so the order in init is part of the protocol.
type RequestParams interface {
	isRequestParams()
}

// Operations without parameters.
type (
	DeleteSessionRequest              struct{}
	DebugCommandRequest               struct{}
	ServerPingRequest                 struct{}
	CheckAliveRequest                 struct{}
	GetBloodMessageDetailRequest      struct{}
	UpdateLoginPlayerCharacterRequest struct{}
	RejectVisitRequest                struct{}
	NotifyAreaEventRequest            struct{}
	LeaveMultiplayRequest             struct{}
	GetMatchDensityRequest            struct{}
	GetPlayZoneIdListRequest          struct{}
	RegisterCharacterLogRequest       struct{}
	SelectCharacterLogRequest         struct{}
	DieLogRequest                     struct{}
	UseMagicLogRequest                struct{}
	UseGestureLogRequest              struct{}
	PurchaseItemLogRequest            struct{}
	DropItemLogRequest                struct{}
	LeaveItemLogRequest               struct{}
	SaleItemLogRequest                struct{}
	CreateItemLogRequest              struct{}
	SummonBuddyLogRequest             struct{}
	KillBossLogRequest                struct{}
	GlobalEventLogRequest             struct{}
	DiscoverMapPointLogRequest        struct{}
	JoinMultiplayLogRequest           struct{}
	LeaveMultiplayLogRequest          struct{}
	CreateSignResultLogRequest        struct{}
	SummonSignResultLogRequest        struct{}
	BreakInResultLogRequest           struct{}
	VisitResultLogRequest             struct{}
	QuickMatchResultLogRequest        struct{}
	QuickMatchEndLogRequest           struct{}
	SystemOptionLogRequest            struct{}
	UnregisterQuickMatchRequest       struct{}
	UpdateQuickMatchRequest           struct{}
	RejectQuickMatchRequest           struct{}
	PollMatchingTicketRequest         struct{}
	DeleteMatchingTicketRequest       struct{}
	CreateRoomRequest                 struct{}
	UpdateRoomRequest                 struct{}
	DeleteRoomRequest                 struct{}
	GetRoomRequest                    struct{}
	GetRoomListRequest                struct{}
	GetUGCSNSCodeListRequest          struct{}
	DeleteUGCRequest                  struct{}
	SendQuickMatchStartRequest        struct{}
	SendQuickMatchResultRequest       struct{}
)

func (CreateSessionRequest) isRequestParams() {}
func (DeleteSessionRequest) isRequestParams() {}
func (RestoreSessionRequest) isRequestParams() {}
func (DebugCommandRequest) isRequestParams() {}
func (ServerPingRequest) isRequestParams() {}
func (CheckAliveRequest) isRequestParams() {}
func (GetAnnounceMessageListRequest) isRequestParams() {}
func (CreateSignRequest) isRequestParams() {}
func (CreateMatchAreaSignRequest) isRequestParams() {}
func (UpdateSignRequest) isRequestParams() {}
func (GetSignListRequest) isRequestParams() {}
func (GetMatchAreaSignListRequest) isRequestParams() {}
func (RemoveSignRequest) isRequestParams() {}
func (SummonSignRequest) isRequestParams() {}
func (RejectSignRequest) isRequestParams() {}
func (CreateBloodMessageRequest) isRequestParams() {}
func (RemoveBloodMessageRequest) isRequestParams() {}
func (ReentryBloodMessageRequest) isRequestParams() {}
func (GetBloodMessageListRequest) isRequestParams() {}
func (EvaluateBloodMessageRequest) isRequestParams() {}
func (GetBloodMessageDetailRequest) isRequestParams() {}
func (CreateBloodstainRequest) isRequestParams() {}
func (GetBloodstainListRequest) isRequestParams() {}
func (GetDeadingGhostRequest) isRequestParams() {}
func (CreateGhostDataRequest) isRequestParams() {}
func (GetGhostDataListRequest) isRequestParams() {}
func (UpdateLoginPlayerCharacterRequest) isRequestParams() {}
func (UpdatePlayerStatusRequest) isRequestParams() {}
func (BreakInTargetRequest) isRequestParams() {}
func (GetBreakInTargetListRequest) isRequestParams() {}
func (RejectBreakInTargetRequest) isRequestParams() {}
func (AllowBreakInTargetRequest) isRequestParams() {}
func (VisitRequest) isRequestParams() {}
func (GetVisitorListRequest) isRequestParams() {}
func (RejectVisitRequest) isRequestParams() {}
func (NotifyAreaEventRequest) isRequestParams() {}
func (JoinMultiplayRequest) isRequestParams() {}
func (LeaveMultiplayRequest) isRequestParams() {}
func (GetMatchDensityRequest) isRequestParams() {}
func (GetPlayZoneIdListRequest) isRequestParams() {}
func (RegisterCharacterLogRequest) isRequestParams() {}
func (SelectCharacterLogRequest) isRequestParams() {}
func (DieLogRequest) isRequestParams() {}
func (UseMagicLogRequest) isRequestParams() {}
func (UseGestureLogRequest) isRequestParams() {}
func (UseItemLogRequest) isRequestParams() {}
func (PurchaseItemLogRequest) isRequestParams() {}
func (GetItemLogRequest) isRequestParams() {}
func (DropItemLogRequest) isRequestParams() {}
func (LeaveItemLogRequest) isRequestParams() {}
func (SaleItemLogRequest) isRequestParams() {}
func (CreateItemLogRequest) isRequestParams() {}
func (SummonBuddyLogRequest) isRequestParams() {}
func (KillEnemyLogRequest) isRequestParams() {}
func (KillBossLogRequest) isRequestParams() {}
func (GlobalEventLogRequest) isRequestParams() {}
func (DiscoverMapPointLogRequest) isRequestParams() {}
func (JoinMultiplayLogRequest) isRequestParams() {}
func (LeaveMultiplayLogRequest) isRequestParams() {}
func (CreateSignResultLogRequest) isRequestParams() {}
func (SummonSignResultLogRequest) isRequestParams() {}
func (BreakInResultLogRequest) isRequestParams() {}
func (VisitResultLogRequest) isRequestParams() {}
func (QuickMatchResultLogRequest) isRequestParams() {}
func (QuickMatchEndLogRequest) isRequestParams() {}
func (SystemOptionLogRequest) isRequestParams() {}
func (SearchQuickMatchRequest) isRequestParams() {}
func (RegisterQuickMatchRequest) isRequestParams() {}
func (UnregisterQuickMatchRequest) isRequestParams() {}
func (UpdateQuickMatchRequest) isRequestParams() {}
func (JoinQuickMatchRequest) isRequestParams() {}
func (AcceptQuickMatchRequest) isRequestParams() {}
func (RejectQuickMatchRequest) isRequestParams() {}
func (GrUploadPlayerEquipmentsRequest) isRequestParams() {}
func (GrGetPlayerEquipmentsRequest) isRequestParams() {}
func (CreateMatchingTicketRequest) isRequestParams() {}
func (PollMatchingTicketRequest) isRequestParams() {}
func (DeleteMatchingTicketRequest) isRequestParams() {}
func (CreateBattleSessionRequest) isRequestParams() {}
func (CreateRoomRequest) isRequestParams() {}
func (UpdateRoomRequest) isRequestParams() {}
func (DeleteRoomRequest) isRequestParams() {}
func (GetRoomRequest) isRequestParams() {}
func (GetRoomListRequest) isRequestParams() {}
func (RegisterUGCRequest) isRequestParams() {}
func (GetUGCSNSCodeListRequest) isRequestParams() {}
func (GetUGCRequest) isRequestParams() {}
func (DeleteUGCRequest) isRequestParams() {}
func (SendQuickMatchStartRequest) isRequestParams() {}
func (SendQuickMatchResultRequest) isRequestParams() {}

func init() {
	wire.RegisterEnum[RequestParams](
		CreateSessionRequest{},
		DeleteSessionRequest{},
		RestoreSessionRequest{},
		DebugCommandRequest{},
		ServerPingRequest{},
		CheckAliveRequest{},
		GetAnnounceMessageListRequest{},
		CreateSignRequest{},
		CreateMatchAreaSignRequest{},
		UpdateSignRequest{},
		GetSignListRequest{},
		GetMatchAreaSignListRequest{},
		RemoveSignRequest{},
		SummonSignRequest{},
		RejectSignRequest{},
		CreateBloodMessageRequest{},
		RemoveBloodMessageRequest{},
		ReentryBloodMessageRequest{},
		GetBloodMessageListRequest{},
		EvaluateBloodMessageRequest{},
		GetBloodMessageDetailRequest{},
		CreateBloodstainRequest{},
		GetBloodstainListRequest{},
		GetDeadingGhostRequest{},
		CreateGhostDataRequest{},
		GetGhostDataListRequest{},
		UpdateLoginPlayerCharacterRequest{},
		UpdatePlayerStatusRequest{},
		BreakInTargetRequest{},
		GetBreakInTargetListRequest{},
		RejectBreakInTargetRequest{},
		AllowBreakInTargetRequest{},
		VisitRequest{},
		GetVisitorListRequest{},
		RejectVisitRequest{},
		NotifyAreaEventRequest{},
		JoinMultiplayRequest{},
		LeaveMultiplayRequest{},
		GetMatchDensityRequest{},
		GetPlayZoneIdListRequest{},
		RegisterCharacterLogRequest{},
		SelectCharacterLogRequest{},
		DieLogRequest{},
		UseMagicLogRequest{},
		UseGestureLogRequest{},
		UseItemLogRequest{},
		PurchaseItemLogRequest{},
		GetItemLogRequest{},
		DropItemLogRequest{},
		LeaveItemLogRequest{},
		SaleItemLogRequest{},
		CreateItemLogRequest{},
		SummonBuddyLogRequest{},
		KillEnemyLogRequest{},
		KillBossLogRequest{},
		GlobalEventLogRequest{},
		DiscoverMapPointLogRequest{},
		JoinMultiplayLogRequest{},
		LeaveMultiplayLogRequest{},
		CreateSignResultLogRequest{},
		SummonSignResultLogRequest{},
		BreakInResultLogRequest{},
		VisitResultLogRequest{},
		QuickMatchResultLogRequest{},
		QuickMatchEndLogRequest{},
		SystemOptionLogRequest{},
		SearchQuickMatchRequest{},
		RegisterQuickMatchRequest{},
		UnregisterQuickMatchRequest{},
		UpdateQuickMatchRequest{},
		JoinQuickMatchRequest{},
		AcceptQuickMatchRequest{},
		RejectQuickMatchRequest{},
		GrUploadPlayerEquipmentsRequest{},
		GrGetPlayerEquipmentsRequest{},
		CreateMatchingTicketRequest{},
		PollMatchingTicketRequest{},
		DeleteMatchingTicketRequest{},
		CreateBattleSessionRequest{},
		CreateRoomRequest{},
		UpdateRoomRequest{},
		DeleteRoomRequest{},
		GetRoomRequest{},
		GetRoomListRequest{},
		RegisterUGCRequest{},
		GetUGCSNSCodeListRequest{},
		GetUGCRequest{},
		DeleteUGCRequest{},
		SendQuickMatchStartRequest{},
		SendQuickMatchResultRequest{},
	)
}
