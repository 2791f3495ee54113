package message

// ObjectIdentifier names a server-side object (sign, message, session...).
// SecondaryID is usually the owning session or player.
type ObjectIdentifier struct {
	ObjectID    int32
	SecondaryID int32
}

type PlayRegionArea struct {
	PlayRegion int32
	Area       int32
}

type PuddleArea struct {
	MatchArea int32
	Area      int32
}

type OnlineArea struct {
	Map        int32
	PlayRegion int32
}

type Location struct {
	MapID uint32
	X     float32
	Y     float32
	Z     float32
}

type MatchingParameters struct {
	GameVersion  uint32
	Unk1         uint32
	RegionFlags  uint32
	Unk2         uint16
	SoulLevel    uint16
	Unk3         uint32
	Unk4         uint32
	ClearCount   uint16
	Password     string
	Unk5         uint32
	MaxReinforce uint16
	Unk6         uint16
}
