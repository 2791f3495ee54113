package message

type CreateSignRequest struct {
	Area               PlayRegionArea
	MatchingParameters MatchingParameters
	Unk0               uint32
	Data               []byte
	GroupPasswords     []string
}

type CreateSignResponse struct {
	Identifier ObjectIdentifier
}

type CreateMatchAreaSignRequest struct {
	Area               PuddleArea
	Unk1               int32
	MatchingParameters MatchingParameters
	Unk2               int32
	Data               []byte
	GroupPasswords     []string
}

type CreateMatchAreaSignResponse struct {
	Identifier ObjectIdentifier
}

type UpdateSignRequest struct {
	Identifier ObjectIdentifier
	Unk0       uint32
}

type GetSignListRequest struct {
	KnownSigns         []ObjectIdentifier
	SearchAreas        []PlayRegionArea
	MatchingParameters MatchingParameters
}

type SignListEntry struct {
	PlayerID       int32
	Identifier     ObjectIdentifier
	Area           PlayRegionArea
	Data           []byte
	SteamID        string
	UnkString      string
	GroupPasswords []string
}

type GetSignListResponse struct {
	KnownSigns []ObjectIdentifier
	Entries    []SignListEntry
}

type GetMatchAreaSignListRequest struct {
	KnownSigns         []ObjectIdentifier
	Unk1               uint32
	Area               PuddleArea
	Unk2               uint8
	MatchingParameters MatchingParameters
	Unk3               uint8
	Unk4               uint8
	Unk5               uint8
	GroupPasswords     []string
}

type MatchAreaSignListEntry struct {
	PlayerID       int32
	Identifier     ObjectIdentifier
	Area           PuddleArea
	Unk1           int32
	Data           []byte
	SteamID        string
	UnkString      string
	GroupPasswords []string
}

type GetMatchAreaSignListResponse struct {
	KnownSigns []ObjectIdentifier
	Entries    []MatchAreaSignListEntry
}

type RemoveSignRequest struct {
	SignIdentifier ObjectIdentifier
}

type SummonSignRequest struct {
	PlayerID   int32
	Identifier ObjectIdentifier
	Data       []byte
}

type RejectSignRequest struct {
	SignIdentifier    ObjectIdentifier
	SummoningPlayerID int32
	Unk1              int32
}
