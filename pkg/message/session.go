package message

type CreateSessionRequest struct {
	Unk1        uint32
	Unk2        uint32
	Unk3        uint32
	GameVersion uint32
	Unk4        uint32
	Unk5        uint32
	SteamTicket []byte
	Unk6        uint32
	Unk7        uint32
	Unk8        uint32
	Unk9        uint32
	Unk10       uint32
	Unk11       uint32
	Unk12       uint32
	Unk13       uint32
	Unk14       uint16
}

// SessionData is echoed back by the client when it restores a session.
// Timestamps are unix seconds.
type SessionData struct {
	Identifier ObjectIdentifier
	ValidFrom  int64
	ValidUntil int64
	Cookie     string
}

type CreateSessionResponse struct {
	PlayerID    int32
	SteamID     string
	IPAddress   string
	SessionData SessionData
	RedirectURL string
}

type RestoreSessionRequest struct {
	GameVersion uint32
	Unk1        uint32
	Unk2        uint32
	SteamTicket []byte
	SessionData SessionData
}

type RestoreSessionResponse struct {
	SessionData SessionData
	UnkString   string
}
