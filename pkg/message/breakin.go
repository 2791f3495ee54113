package message

type BreakInTargetRequest struct {
	Unk0     uint32
	Unk4     uint32
	PlayerID int32
	UnkC     uint32
}

type GetBreakInTargetListRequest struct {
	PlayRegion         uint32
	Unk4               uint32
	MatchingParameters MatchingParameters
	Unk48              uint32
}

type BreakInTargetEntry struct {
	PlayerID int32
	SteamID  string
}

type GetBreakInTargetListResponse struct {
	PlayRegion uint32
	Entries    []BreakInTargetEntry
}

type RejectBreakInTargetRequest struct {
	InvadingPlayerID int32
	Reason           int32
	PlayRegion       uint32
	UnkC             uint32
}

type AllowBreakInTargetRequest struct {
	PlayerID int32
	JoinData []byte
	Unk1     uint32
}

type VisitRequest struct {
	Unk1       uint32
	PlayRegion uint32
	Unk2       uint32
	PlayerID   int32
	JoinData   []byte
}

type GetVisitorListRequest struct {
	PlayRegion         uint32
	Unk1               uint32
	MatchingParameters MatchingParameters
	Unk2               uint32
	Unk3               uint32
}
