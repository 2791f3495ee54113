package message

type UpdatePlayerStatusRequest struct {
	Unk1                uint32
	PlayRegion          uint32
	Unk2                uint32
	DeathCount          uint32
	TotalSummonCount    uint32
	CoopSuccessCount    uint32
	InvadersKilledCount uint32
	HostsKilledCount    uint32
	GameVersion         uint32
	Unk7                uint8
	Unk8                uint32
	Character           CharacterData
}

// OnlineActivity_Invadeable marks a character that accepts invasions.
const OnlineActivity_Invadeable uint8 = 0x1

type CharacterData struct {
	Level         uint32
	CharacterName string

	OnlineActivity uint8

	RunesOwned      uint32
	TotalRunesOwned uint32
	Unk4            uint8
	Unk5            uint32

	Stats      CharacterStats
	Attributes CharacterAttributes

	EquipLoad    float32
	MaxEquipLoad float32
	Poise        float32
	Discovery    uint32

	AttackPower    CharacterAttack
	Defense        CharacterDefense
	DamageNegation CharacterDefense
	Resistance     CharacterResistance

	Unk6              uint32
	Unk7              uint32
	Unk8              uint32
	Unk9              uint32
	Unk10             uint32
	Unk11             uint32
	Unk12             uint32
	Unk13             uint32
	Unk14             []uint32
	VisitedAreas      []uint32
	Unk15             [8]uint32
	MaxReinforceLevel uint32
	Unk20             uint32

	Unk21  [0x1b]uint8
	UnkVec []uint32
	Unk22  uint32

	Password       string
	GroupPasswords []string
	Unk23          uint16
	Unk24          uint8
	Unk25          uint8
	SitesOfGrace   []SiteOfGrace
	Unk26          [0x18]uint8
	Equipment      CharacterEquipment
}

type CharacterStats struct {
	HP             uint32
	MaxHP          uint32
	BaseMaxHP      uint32
	FP             uint32
	MaxFP          uint32
	BaseMaxFP      uint32
	Stamina        uint32
	MaxStamina     uint32
	BaseMaxStamina uint32
}

type CharacterAttributes struct {
	Vigor        uint32
	Mind         uint32
	Endurance    uint32
	Vitality     uint32
	Strength     uint32
	Dexterity    uint32
	Intelligence uint32
	Faith        uint32
	Arcane       uint32
}

type CharacterAttack struct {
	RightArmamentPrimary   int32
	RightArmamentSecondary int32
	RightArmamentTertiary  int32
	LeftArmamentPrimary    int32
	LeftArmamentSecondary  int32
	LeftArmamentTertiary   int32
}

// CharacterDefense is shared by the defense and damage negation blocks,
// which have the same layout.
type CharacterDefense struct {
	Physical  uint32
	Strike    uint32
	Slash     uint32
	Pierce    uint32
	Magic     uint32
	Fire      uint32
	Lightning uint32
	Holy      uint32
}

type CharacterResistance struct {
	Immunity   uint32
	Robustness uint32
	Focus      uint32
	Vitality   uint32
}

type SiteOfGrace struct {
	SiteOfGrace uint32
	Discovered  uint8
}

type EquippedWeapon struct {
	Weapon   int32
	AshOfWar int32
}

type EquippedProtector struct {
	Protector int32
	Unk       int32
}

type CharacterEquipment struct {
	WeaponsLeftHand  []EquippedWeapon
	WeaponsRightHand []EquippedWeapon
	Head             EquippedProtector
	Chest            EquippedProtector
	Arms             EquippedProtector
	Legs             EquippedProtector
	Accessories      []int32
	Quickslots       []int32
	Pouchslots       []int32
	Arrows           []int32
	Bolts            []int32
	Spells           []int32
}

type UpdateLoginPlayerCharacterResponse struct {
	CharacterID uint32
	Unk1        uint32
	Unk2        uint32
	Unk3        uint32
	Unk4        uint32
	Unk5        uint32
	Unk6        uint32
}

type JoinMultiplayRequest struct {
	Unk1 uint32
	Unk2 uint32
	Unk3 uint32
	Unk4 uint32
	Unk5 uint32
	Unk6 uint32
}

type UseItemLogRequest struct {
	UsedItems []UsedItem
	Location  Location
}

type UsedItem struct {
	ItemID    uint32
	TimesUsed uint32
	Unk3      uint32
}

type GetItemLogRequest struct {
	AcquiredItems []AcquiredItem
}

type AcquiredItem struct {
	Location     Location
	ItemCategory uint32
	ItemID       uint32
	Quantity     uint32
	Unk1         uint32
	Unk2         uint32
	Unk3         uint32
}

type KillEnemyLogRequest struct {
	KilledEnemies []KilledEnemy
	Location      Location
}

type KilledEnemy struct {
	NpcParam    uint32
	KilledCount uint32
}
