package message

import "fmt"

type SearchQuickMatchRequest struct {
	QuickmatchSettings int32
	Unk1               uint32
	ArenaID            int32
	Unk2               uint32
	MatchingParameters MatchingParameters
	Unk3               uint32
}

type QuickMatchEntry struct {
	HostPlayerID int32
	HostSteamID  string
	ArenaID      int32
}

type SearchQuickMatchResponse struct {
	Matches []QuickMatchEntry
	Unk1    uint16
}

type RegisterQuickMatchRequest struct {
	QuickmatchSettings int32
	ArenaID            int32
	MatchingParameters MatchingParameters
	Unk1               uint8
	Unk2               uint32
}

type JoinQuickMatchRequest struct {
	Unk1            uint32
	HostPlayerID    int32
	JoiningPlayerID int32
	ArenaID         int32
	Unk2            uint8
	Password        string
}

type AcceptQuickMatchRequest struct {
	Unk1            uint32
	JoiningPlayerID int32
	JoinData        []byte
}

// QuickmatchResult travels as a bare u32.
type QuickmatchResult uint32

const (
	QuickmatchResult_Win QuickmatchResult = iota
	QuickmatchResult_Lose
	QuickmatchResult_Draw
	QuickmatchResult_Error
)

func (QuickmatchResult) VariantCount() uint32 { return 4 }

func (r QuickmatchResult) String() string {
	switch r {
	case QuickmatchResult_Win:
		return "Win"
	case QuickmatchResult_Lose:
		return "Lose"
	case QuickmatchResult_Draw:
		return "Draw"
	case QuickmatchResult_Error:
		return "Error"
	}
	return fmt.Sprintf("QuickmatchResult(%d)", uint32(r))
}

type CreateBattleSessionRequest struct {
	QuickmatchSettings uint32
	Unk2               uint32
	Result             QuickmatchResult
	Eliminations       uint8
	Unk5               string
}

type CreateBattleSessionResponse struct {
	Unk1 uint32
	Unk2 uint32
	Unk3 uint32
	Unk4 uint32
	Unk5 uint32
	Unk6 uint32
}

const (
	PoolType_Fia uint32 = 0x0
	PoolType_Jar uint32 = 0x1
)

type GrUploadPlayerEquipmentsRequest struct {
	Data     []byte
	PoolType uint32
}

type GrGetPlayerEquipmentsRequest struct {
	PoolType uint32
	Unk2     uint32
	Count    uint32
}

type PlayerEquipmentsEntry struct {
	EntryID uint32
	Data    []byte
}

type GrGetPlayerEquipmentsResponse struct {
	Entries []PlayerEquipmentsEntry
}

type CreateMatchingTicketRequest struct {
	Unk1 []uint32
	Unk2 uint32
}

type PollMatchingTicketResponse struct {
	Unk0 uint32
}
