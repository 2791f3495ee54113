package message

import "github.com/sessamekesh/waygate/pkg/wire"

// ResponseParams mirrors RequestParams one to one: the response to an
// operation uses the same discriminant as its request.
type ResponseParams interface {
	isResponseParams()
}

// Operations without parameters.
type (
	DeleteSessionResponse            struct{}
	DebugCommandResponse             struct{}
	ServerPingResponse               struct{}
	CheckAliveResponse               struct{}
	UpdateSignResponse               struct{}
	RemoveSignResponse               struct{}
	SummonSignResponse               struct{}
	RejectSignResponse               struct{}
	RemoveBloodMessageResponse       struct{}
	EvaluateBloodMessageResponse     struct{}
	GetBloodMessageDetailResponse    struct{}
	UpdatePlayerStatusResponse       struct{}
	BreakInTargetResponse            struct{}
	RejectBreakInTargetResponse      struct{}
	AllowBreakInTargetResponse       struct{}
	VisitResponse                    struct{}
	GetVisitorListResponse           struct{}
	RejectVisitResponse              struct{}
	NotifyAreaEventResponse          struct{}
	JoinMultiplayResponse            struct{}
	LeaveMultiplayResponse           struct{}
	GetMatchDensityResponse          struct{}
	GetPlayZoneIdListResponse        struct{}
	RegisterCharacterLogResponse     struct{}
	SelectCharacterLogResponse       struct{}
	DieLogResponse                   struct{}
	UseMagicLogResponse              struct{}
	UseGestureLogResponse            struct{}
	UseItemLogResponse               struct{}
	PurchaseItemLogResponse          struct{}
	GetItemLogResponse               struct{}
	DropItemLogResponse              struct{}
	LeaveItemLogResponse             struct{}
	SaleItemLogResponse              struct{}
	CreateItemLogResponse            struct{}
	SummonBuddyLogResponse           struct{}
	KillEnemyLogResponse             struct{}
	KillBossLogResponse              struct{}
	GlobalEventLogResponse           struct{}
	DiscoverMapPointLogResponse      struct{}
	JoinMultiplayLogResponse         struct{}
	LeaveMultiplayLogResponse        struct{}
	CreateSignResultLogResponse      struct{}
	SummonSignResultLogResponse      struct{}
	BreakInResultLogResponse         struct{}
	VisitResultLogResponse           struct{}
	QuickMatchResultLogResponse      struct{}
	QuickMatchEndLogResponse         struct{}
	SystemOptionLogResponse          struct{}
	RegisterQuickMatchResponse       struct{}
	UnregisterQuickMatchResponse     struct{}
	UpdateQuickMatchResponse         struct{}
	JoinQuickMatchResponse           struct{}
	AcceptQuickMatchResponse         struct{}
	RejectQuickMatchResponse         struct{}
	GrUploadPlayerEquipmentsResponse struct{}
	CreateMatchingTicketResponse     struct{}
	DeleteMatchingTicketResponse     struct{}
	CreateRoomResponse               struct{}
	UpdateRoomResponse               struct{}
	DeleteRoomResponse               struct{}
	GetRoomResponse                  struct{}
	GetRoomListResponse              struct{}
	GetUGCSNSCodeListResponse        struct{}
	GetUGCResponse                   struct{}
	DeleteUGCResponse                struct{}
	SendQuickMatchStartResponse      struct{}
	SendQuickMatchResultResponse     struct{}
)

func (CreateSessionResponse) isResponseParams() {}
func (DeleteSessionResponse) isResponseParams() {}
func (RestoreSessionResponse) isResponseParams() {}
func (DebugCommandResponse) isResponseParams() {}
func (ServerPingResponse) isResponseParams() {}
func (CheckAliveResponse) isResponseParams() {}
func (GetAnnounceMessageListResponse) isResponseParams() {}
func (CreateSignResponse) isResponseParams() {}
func (CreateMatchAreaSignResponse) isResponseParams() {}
func (UpdateSignResponse) isResponseParams() {}
func (GetSignListResponse) isResponseParams() {}
func (GetMatchAreaSignListResponse) isResponseParams() {}
func (RemoveSignResponse) isResponseParams() {}
func (SummonSignResponse) isResponseParams() {}
func (RejectSignResponse) isResponseParams() {}
func (CreateBloodMessageResponse) isResponseParams() {}
func (RemoveBloodMessageResponse) isResponseParams() {}
func (ReentryBloodMessageResponse) isResponseParams() {}
func (GetBloodMessageListResponse) isResponseParams() {}
func (EvaluateBloodMessageResponse) isResponseParams() {}
func (GetBloodMessageDetailResponse) isResponseParams() {}
func (CreateBloodstainResponse) isResponseParams() {}
func (GetBloodstainListResponse) isResponseParams() {}
func (GetDeadingGhostResponse) isResponseParams() {}
func (CreateGhostDataResponse) isResponseParams() {}
func (GetGhostDataListResponse) isResponseParams() {}
func (UpdateLoginPlayerCharacterResponse) isResponseParams() {}
func (UpdatePlayerStatusResponse) isResponseParams() {}
func (BreakInTargetResponse) isResponseParams() {}
func (GetBreakInTargetListResponse) isResponseParams() {}
func (RejectBreakInTargetResponse) isResponseParams() {}
func (AllowBreakInTargetResponse) isResponseParams() {}
func (VisitResponse) isResponseParams() {}
func (GetVisitorListResponse) isResponseParams() {}
func (RejectVisitResponse) isResponseParams() {}
func (NotifyAreaEventResponse) isResponseParams() {}
func (JoinMultiplayResponse) isResponseParams() {}
func (LeaveMultiplayResponse) isResponseParams() {}
func (GetMatchDensityResponse) isResponseParams() {}
func (GetPlayZoneIdListResponse) isResponseParams() {}
func (RegisterCharacterLogResponse) isResponseParams() {}
func (SelectCharacterLogResponse) isResponseParams() {}
func (DieLogResponse) isResponseParams() {}
func (UseMagicLogResponse) isResponseParams() {}
func (UseGestureLogResponse) isResponseParams() {}
func (UseItemLogResponse) isResponseParams() {}
func (PurchaseItemLogResponse) isResponseParams() {}
func (GetItemLogResponse) isResponseParams() {}
func (DropItemLogResponse) isResponseParams() {}
func (LeaveItemLogResponse) isResponseParams() {}
func (SaleItemLogResponse) isResponseParams() {}
func (CreateItemLogResponse) isResponseParams() {}
func (SummonBuddyLogResponse) isResponseParams() {}
func (KillEnemyLogResponse) isResponseParams() {}
func (KillBossLogResponse) isResponseParams() {}
func (GlobalEventLogResponse) isResponseParams() {}
func (DiscoverMapPointLogResponse) isResponseParams() {}
func (JoinMultiplayLogResponse) isResponseParams() {}
func (LeaveMultiplayLogResponse) isResponseParams() {}
func (CreateSignResultLogResponse) isResponseParams() {}
func (SummonSignResultLogResponse) isResponseParams() {}
func (BreakInResultLogResponse) isResponseParams() {}
func (VisitResultLogResponse) isResponseParams() {}
func (QuickMatchResultLogResponse) isResponseParams() {}
func (QuickMatchEndLogResponse) isResponseParams() {}
func (SystemOptionLogResponse) isResponseParams() {}
func (SearchQuickMatchResponse) isResponseParams() {}
func (RegisterQuickMatchResponse) isResponseParams() {}
func (UnregisterQuickMatchResponse) isResponseParams() {}
func (UpdateQuickMatchResponse) isResponseParams() {}
func (JoinQuickMatchResponse) isResponseParams() {}
func (AcceptQuickMatchResponse) isResponseParams() {}
func (RejectQuickMatchResponse) isResponseParams() {}
func (GrUploadPlayerEquipmentsResponse) isResponseParams() {}
func (GrGetPlayerEquipmentsResponse) isResponseParams() {}
func (CreateMatchingTicketResponse) isResponseParams() {}
func (PollMatchingTicketResponse) isResponseParams() {}
func (DeleteMatchingTicketResponse) isResponseParams() {}
func (CreateBattleSessionResponse) isResponseParams() {}
func (CreateRoomResponse) isResponseParams() {}
func (UpdateRoomResponse) isResponseParams() {}
func (DeleteRoomResponse) isResponseParams() {}
func (GetRoomResponse) isResponseParams() {}
func (GetRoomListResponse) isResponseParams() {}
func (RegisterUGCResponse) isResponseParams() {}
func (GetUGCSNSCodeListResponse) isResponseParams() {}
func (GetUGCResponse) isResponseParams() {}
func (DeleteUGCResponse) isResponseParams() {}
func (SendQuickMatchStartResponse) isResponseParams() {}
func (SendQuickMatchResultResponse) isResponseParams() {}

func init() {
	wire.RegisterEnum[ResponseParams](
		CreateSessionResponse{},
		DeleteSessionResponse{},
		RestoreSessionResponse{},
		DebugCommandResponse{},
		ServerPingResponse{},
		CheckAliveResponse{},
		GetAnnounceMessageListResponse{},
		CreateSignResponse{},
		CreateMatchAreaSignResponse{},
		UpdateSignResponse{},
		GetSignListResponse{},
		GetMatchAreaSignListResponse{},
		RemoveSignResponse{},
		SummonSignResponse{},
		RejectSignResponse{},
		CreateBloodMessageResponse{},
		RemoveBloodMessageResponse{},
		ReentryBloodMessageResponse{},
		GetBloodMessageListResponse{},
		EvaluateBloodMessageResponse{},
		GetBloodMessageDetailResponse{},
		CreateBloodstainResponse{},
		GetBloodstainListResponse{},
		GetDeadingGhostResponse{},
		CreateGhostDataResponse{},
		GetGhostDataListResponse{},
		UpdateLoginPlayerCharacterResponse{},
		UpdatePlayerStatusResponse{},
		BreakInTargetResponse{},
		GetBreakInTargetListResponse{},
		RejectBreakInTargetResponse{},
		AllowBreakInTargetResponse{},
		VisitResponse{},
		GetVisitorListResponse{},
		RejectVisitResponse{},
		NotifyAreaEventResponse{},
		JoinMultiplayResponse{},
		LeaveMultiplayResponse{},
		GetMatchDensityResponse{},
		GetPlayZoneIdListResponse{},
		RegisterCharacterLogResponse{},
		SelectCharacterLogResponse{},
		DieLogResponse{},
		UseMagicLogResponse{},
		UseGestureLogResponse{},
		UseItemLogResponse{},
		PurchaseItemLogResponse{},
		GetItemLogResponse{},
		DropItemLogResponse{},
		LeaveItemLogResponse{},
		SaleItemLogResponse{},
		CreateItemLogResponse{},
		SummonBuddyLogResponse{},
		KillEnemyLogResponse{},
		KillBossLogResponse{},
		GlobalEventLogResponse{},
		DiscoverMapPointLogResponse{},
		JoinMultiplayLogResponse{},
		LeaveMultiplayLogResponse{},
		CreateSignResultLogResponse{},
		SummonSignResultLogResponse{},
		BreakInResultLogResponse{},
		VisitResultLogResponse{},
		QuickMatchResultLogResponse{},
		QuickMatchEndLogResponse{},
		SystemOptionLogResponse{},
		SearchQuickMatchResponse{},
		RegisterQuickMatchResponse{},
		UnregisterQuickMatchResponse{},
		UpdateQuickMatchResponse{},
		JoinQuickMatchResponse{},
		AcceptQuickMatchResponse{},
		RejectQuickMatchResponse{},
		GrUploadPlayerEquipmentsResponse{},
		GrGetPlayerEquipmentsResponse{},
		CreateMatchingTicketResponse{},
		PollMatchingTicketResponse{},
		DeleteMatchingTicketResponse{},
		CreateBattleSessionResponse{},
		CreateRoomResponse{},
		UpdateRoomResponse{},
		DeleteRoomResponse{},
		GetRoomResponse{},
		GetRoomListResponse{},
		RegisterUGCResponse{},
		GetUGCSNSCodeListResponse{},
		GetUGCResponse{},
		DeleteUGCResponse{},
		SendQuickMatchStartResponse{},
		SendQuickMatchResultResponse{},
	)
}
