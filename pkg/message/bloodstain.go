package message

type CreateBloodstainRequest struct {
	Area              PlayRegionArea
	AdvertisementData []byte
	ReplayData        []byte
	GroupPasswords    []string
}

type CreateBloodstainResponse struct {
	Identifier ObjectIdentifier
}

type GetBloodstainListRequest struct {
	SearchAreas    []PlayRegionArea
	GroupPasswords []string
}

type BloodstainListEntry struct {
	Area              PlayRegionArea
	Identifier        ObjectIdentifier
	AdvertisementData []byte
	GroupPasswords    []string
}

type GetBloodstainListResponse struct {
	Entries []BloodstainListEntry
}

type GetDeadingGhostRequest struct {
	Area       PlayRegionArea
	Identifier ObjectIdentifier
}

type GetDeadingGhostResponse struct {
	Unk0       int32
	Unk4       int32
	Identifier ObjectIdentifier
	ReplayData []byte
}

type CreateGhostDataRequest struct {
	Area           PlayRegionArea
	ReplayData     []byte
	GroupPasswords []string
}

type CreateGhostDataResponse struct {
	Identifier ObjectIdentifier
}

type GetGhostDataListRequest struct {
	SearchAreas    []PlayRegionArea
	GroupPasswords []string
}

type GhostDataListEntry struct {
	Area           PlayRegionArea
	Identifier     ObjectIdentifier
	ReplayData     []byte
	GroupPasswords []string
}

type GetGhostDataListResponse struct {
	Entries []GhostDataListEntry
}
