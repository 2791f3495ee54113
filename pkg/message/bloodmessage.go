package message

type CreateBloodMessageRequest struct {
	Area           PlayRegionArea
	CharacterID    int32
	Data           []byte
	Unk            int32
	GroupPasswords []string
}

type CreateBloodMessageResponse struct {
	Identifier ObjectIdentifier
}

type RemoveBloodMessageRequest struct {
	Identifier ObjectIdentifier
}

type ReentryBloodMessageRequest struct {
	Identifiers []ObjectIdentifier
	Unk         uint32
}

type ReentryBloodMessageResponse struct {
	Identifiers []ObjectIdentifier
}

type GetBloodMessageListRequest struct {
	SearchAreas    []PlayRegionArea
	GroupPasswords []string
}

type BloodMessageListEntry struct {
	PlayerID       int32
	CharacterID    int32
	Identifier     ObjectIdentifier
	RatingGood     int32
	RatingBad      int32
	Data           []byte
	Area           PlayRegionArea
	GroupPasswords []string
}

type GetBloodMessageListResponse struct {
	Entries []BloodMessageListEntry
}

type EvaluateBloodMessageRequest struct {
	Identifier ObjectIdentifier
	Rating     BloodMessageRating
}

type BloodMessageRating uint32

const (
	BloodMessageRating_Good BloodMessageRating = iota
	BloodMessageRating_Bad
)

func (BloodMessageRating) VariantCount() uint32 { return 2 }
