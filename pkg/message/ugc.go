package message

type RegisterUGCRequest struct {
	Unk1 uint32
	Data []byte
	Unk2 uint32
	Unk3 uint32
}

type RegisterUGCResponse struct {
	UgcCode string
}

type GetUGCRequest struct {
	Unk1    uint32
	Unk2    uint32
	UgcCode string
}
