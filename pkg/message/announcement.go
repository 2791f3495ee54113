package message

type GetAnnounceMessageListRequest struct {
	MaxEntries uint32
	Unk1       uint32
	Unk2       uint32
}

type AnnounceMessage struct {
	Index       uint32
	Order       uint32
	Unk1        uint32
	Title       string
	Body        string
	PublishedAt uint64
}

type GetAnnounceMessageListResponse struct {
	List1 []AnnounceMessage
	List2 []AnnounceMessage
}
