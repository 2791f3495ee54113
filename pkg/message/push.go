package message

import "github.com/sessamekesh/waygate/pkg/wire"

// PushParams are server initiated messages. They are never answered with a
// response and carry no sequence number.
type PushParams interface {
	isPushParams()
}

type NotifyPush struct {
	Identifier ObjectIdentifier
	Timestamp  uint64
	Section1   NotifySection1
	Section2   NotifySection2
}

type JoinPush struct {
	Identifier  ObjectIdentifier
	JoinPayload JoinPayload
}

func (NotifyPush) isPushParams() {}
func (JoinPush) isPushParams()   {}

type NotifySection1 interface {
	isNotifySection1()
}

type NotifySection1Variant1 struct {
	Unk1 uint32
	Unk2 uint32
}

type NotifySection1Variant2 struct {
	Unk1     uint8
	Password string
}

func (NotifySection1Variant1) isNotifySection1() {}
func (NotifySection1Variant2) isNotifySection1() {}

type NotifySection2 interface {
	isNotifySection2()
}

// NotifyMessage is the section used for plain text announcements.
type NotifyMessage struct {
	Message string
	Unk1    uint64
	Unk2    uint32
	Unk3    uint32
}

type NotifyPlayerData struct {
	Unk1       uint32
	Password   string
	PlayerData []byte
}

func (NotifyMessage) isNotifySection2()    {}
func (NotifyPlayerData) isNotifySection2() {}

type JoinPayload interface {
	isJoinPayload()
}

type JoinUnk0 struct {
	Unk1 uint64
}

type JoinUnk1 struct {
	Unk1 uint32
	Unk2 uint64
	Unk3 uint32
}

type InvaderJoining struct {
	InvaderPlayerID int32
	InvaderSteamID  string
	Unk1            uint32
	Unk2            uint32
	PlayRegion      uint32
}

type JoiningAsInvader struct {
	HostPlayerID int32
	JoinData     []byte
	Unk1         uint32
}

type JoinUnk4 struct {
	Unk1 uint32
	Unk2 uint32
	Unk3 string
}

type PlayerJoining struct {
	SummonedPlayerID uint32
	SignIdentifier   ObjectIdentifier
}

type JoiningPlayer struct {
	SummoningPlayerID int32
	SteamID           string
	SummonedPlayerID  int32
	SignIdentifier    ObjectIdentifier
	JoinData          []byte
}

type JoinUnk7 struct {
	Unk1 uint64
	Unk2 uint32
}

type JoinUnk8 struct {
	Unk1 uint32
	Unk2 string
	Unk3 uint32
}

type JoiningAsBlue struct {
	HostPlayerID      uint32
	HostPlayerSteamID string
	JoinData          []byte
	Unk1              uint32
	Unk2              uint32
	PlayRegionID      uint32
}

type JoinUnkA struct {
	Unk1 uint32
	Unk2 uint32
	Unk3 string
	Unk4 uint32
}

type PlayerJoiningQuickMatch struct {
	QuickmatchSettings   int32
	JoiningPlayerID      int32
	JoiningPlayerSteamID string
	Unk2                 int32
	ArenaID              int32
	Unk3                 uint8
	Password             string
}

type JoiningQuickMatch struct {
	QuickmatchSettings int32
	HostPlayerID       int32
	HostSteamID        string
	JoinData           []byte
}

type JoinUnkD struct {
	Unk1 uint32
	Unk2 uint32
	Unk3 uint32
}

type JoinUnkE struct {
	Unk1 uint32
	Unk2 string
	Unk3 []byte
}

type JoinUnkF struct {
	Unk1 []byte
}

func (JoinUnk0) isJoinPayload()                {}
func (JoinUnk1) isJoinPayload()                {}
func (InvaderJoining) isJoinPayload()          {}
func (JoiningAsInvader) isJoinPayload()        {}
func (JoinUnk4) isJoinPayload()                {}
func (PlayerJoining) isJoinPayload()           {}
func (JoiningPlayer) isJoinPayload()           {}
func (JoinUnk7) isJoinPayload()                {}
func (JoinUnk8) isJoinPayload()                {}
func (JoiningAsBlue) isJoinPayload()           {}
func (JoinUnkA) isJoinPayload()                {}
func (PlayerJoiningQuickMatch) isJoinPayload() {}
func (JoiningQuickMatch) isJoinPayload()       {}
func (JoinUnkD) isJoinPayload()                {}
func (JoinUnkE) isJoinPayload()                {}
func (JoinUnkF) isJoinPayload()                {}

func init() {
	wire.RegisterEnum[PushParams](NotifyPush{}, JoinPush{})
	wire.RegisterEnum[NotifySection1](NotifySection1Variant1{}, NotifySection1Variant2{})
	wire.RegisterEnum[NotifySection2](NotifyMessage{}, NotifyPlayerData{})
	wire.RegisterEnum[JoinPayload](
		JoinUnk0{},
		JoinUnk1{},
		InvaderJoining{},
		JoiningAsInvader{},
		JoinUnk4{},
		PlayerJoining{},
		JoiningPlayer{},
		JoinUnk7{},
		JoinUnk8{},
		JoiningAsBlue{},
		JoinUnkA{},
		PlayerJoiningQuickMatch{},
		JoiningQuickMatch{},
		JoinUnkD{},
		JoinUnkE{},
		JoinUnkF{},
	)
}
