package message

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"testing"

	"github.com/sessamekesh/waygate/pkg/wire"
)

func TestEveryRequestVariantRoundTrips(t *testing.T) {
	variants := wire.Variants[RequestParams]()
	if len(variants) != 90 {
		t.Fatalf("request variants = %d, want 90", len(variants))
	}

	for i, v := range variants {
		encoded, err := wire.Encode(v)
		if err != nil {
			t.Fatalf("Encode(%s) error = %v", RequestName(v), err)
		}
		if got := binary.LittleEndian.Uint32(encoded); got != uint32(i) {
			t.Fatalf("%s discriminant = %d, want %d", RequestName(v), got, i)
		}

		back, err := wire.Decode[RequestParams](encoded)
		if err != nil {
			t.Fatalf("Decode(%s) error = %v", RequestName(v), err)
		}
		if !reflect.DeepEqual(normalize(back), normalize(v)) {
			t.Fatalf("%s round trip = %#v, want %#v", RequestName(v), back, v)
		}
	}
}

func TestEveryResponseVariantRoundTrips(t *testing.T) {
	requests := wire.Variants[RequestParams]()
	responses := wire.Variants[ResponseParams]()
	if len(responses) != len(requests) {
		t.Fatalf("response variants = %d, want %d", len(responses), len(requests))
	}

	for i, v := range responses {
		if RequestName(requests[i]) != ResponseName(v) {
			t.Fatalf("variant %d: request %s paired with response %s", i, RequestName(requests[i]), ResponseName(v))
		}

		encoded, err := wire.Encode(v)
		if err != nil {
			t.Fatalf("Encode(%s) error = %v", ResponseName(v), err)
		}
		back, err := wire.Decode[ResponseParams](encoded)
		if err != nil {
			t.Fatalf("Decode(%s) error = %v", ResponseName(v), err)
		}
		if !reflect.DeepEqual(normalize(back), normalize(v)) {
			t.Fatalf("%s round trip = %#v, want %#v", ResponseName(v), back, v)
		}
	}
}

// normalize encodes the variant's fields, so nil and empty slices compare
// equal.
func normalize(v any) []byte {
	b, _ := wire.Marshal(v)
	return b
}

func TestCheckAliveLayout(t *testing.T) {
	encoded, err := wire.Encode[RequestParams](CheckAliveRequest{})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.Equal(encoded, []byte{5, 0, 0, 0}) {
		t.Fatalf("CheckAlive = %x, want 05000000", encoded)
	}

	encoded, _ = wire.Encode[ResponseParams](CheckAliveResponse{})
	if !bytes.Equal(encoded, []byte{5, 0, 0, 0}) {
		t.Fatalf("CheckAlive response = %x, want 05000000", encoded)
	}
}

func TestSessionRequestsRoundTrip(t *testing.T) {
	in := []RequestParams{
		CreateSessionRequest{
			GameVersion: 11001000,
			SteamTicket: []byte{0xde, 0xad, 0xbe, 0xef},
			Unk14:       7,
		},
		RestoreSessionRequest{
			GameVersion: 11001000,
			SteamTicket: []byte{1},
			SessionData: SessionData{
				Identifier: ObjectIdentifier{ObjectID: 291891302},
				ValidFrom:  1695716746,
				ValidUntil: 1695720346,
				Cookie:     "a6ab6316a2e7683db73c6fe281b280e251f1756458bad659428799adcfbffc4e",
			},
		},
	}

	for _, req := range in {
		if !IsSessionRequest(req) {
			t.Fatalf("IsSessionRequest(%s) = false", RequestName(req))
		}

		encoded, err := wire.Encode(req)
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		back, err := wire.Decode[RequestParams](encoded)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if !reflect.DeepEqual(back, req) {
			t.Fatalf("round trip = %#v, want %#v", back, req)
		}
	}

	if IsSessionRequest(CheckAliveRequest{}) {
		t.Fatalf("IsSessionRequest(CheckAlive) = true")
	}
}

func TestUpdatePlayerStatusRoundTrip(t *testing.T) {
	req := UpdatePlayerStatusRequest{
		PlayRegion:  1100000,
		GameVersion: 11001000,
		Character: CharacterData{
			Level:          99,
			CharacterName:  "Melina",
			OnlineActivity: OnlineActivity_Invadeable,
			Stats:          CharacterStats{HP: 1200, MaxHP: 1450},
			Attributes:     CharacterAttributes{Vigor: 40, Arcane: 9},
			EquipLoad:      30.5,
			VisitedAreas:   []uint32{60423600, 60433600},
			Unk15:          [8]uint32{1, 2, 3, 4, 5, 6, 7, 8},
			Unk21:          [0x1b]uint8{0: 0xaa, 0x1a: 0xbb},
			GroupPasswords: []string{"", "secret"},
			SitesOfGrace:   []SiteOfGrace{{SiteOfGrace: 76101, Discovered: 1}},
			Equipment: CharacterEquipment{
				WeaponsRightHand: []EquippedWeapon{{Weapon: 2000000, AshOfWar: 10}},
				Head:             EquippedProtector{Protector: 40000},
				Quickslots:       []int32{1000, -1},
			},
		},
	}

	encoded, err := wire.Encode[RequestParams](req)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	back, err := wire.Decode[RequestParams](encoded)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(normalize(back), encoded[4:]) {
		t.Fatalf("round trip mismatch: %#v", back)
	}

	got := back.(UpdatePlayerStatusRequest)
	if got.Character.CharacterName != "Melina" || got.Character.Unk21[0x1a] != 0xbb {
		t.Fatalf("character = %#v", got.Character)
	}
}

func TestPushVariantsRoundTrip(t *testing.T) {
	pushes := []PushParams{
		NotifyPush{
			Identifier: ObjectIdentifier{ObjectID: 1, SecondaryID: 2},
			Timestamp:  1700000000,
			Section1:   NotifySection1Variant1{Unk1: 7},
			Section2:   NotifyMessage{Message: "Server restarting"},
		},
		NotifyPush{
			Section1: NotifySection1Variant2{Unk1: 1, Password: "pw"},
			Section2: NotifyPlayerData{PlayerData: []byte{1, 2}},
		},
		JoinPush{
			Identifier:  ObjectIdentifier{ObjectID: 3},
			JoinPayload: JoiningPlayer{SteamID: "01100001023a7e18", JoinData: []byte{9}},
		},
	}

	for _, p := range wire.Variants[JoinPayload]() {
		pushes = append(pushes, JoinPush{JoinPayload: p})
	}

	for _, p := range pushes {
		encoded, err := wire.Encode(p)
		if err != nil {
			t.Fatalf("Encode(%#v) error = %v", p, err)
		}
		back, err := wire.Decode[PushParams](encoded)
		if err != nil {
			t.Fatalf("Decode(%x) error = %v", encoded, err)
		}
		if !bytes.Equal(normalize(back), encoded[4:]) {
			t.Fatalf("round trip = %#v, want %#v", back, p)
		}
	}
}

func TestJoinPayloadDiscriminants(t *testing.T) {
	d, ok := wire.Discriminant[JoinPayload](JoiningQuickMatch{})
	if !ok || d != 0xc {
		t.Fatalf("JoiningQuickMatch discriminant = %d, %v, want 12", d, ok)
	}
}

func TestQuickmatchResultRange(t *testing.T) {
	_, err := wire.Decode[QuickmatchResult]([]byte{4, 0, 0, 0})
	if err == nil {
		t.Fatalf("Decode(4) succeeded, want error")
	}

	r, err := wire.Decode[QuickmatchResult]([]byte{2, 0, 0, 0})
	if err != nil || r != QuickmatchResult_Draw {
		t.Fatalf("Decode(2) = %v, %v, want Draw", r, err)
	}
}

func TestNames(t *testing.T) {
	if got := RequestName(GetAnnounceMessageListRequest{}); got != "GetAnnounceMessageList" {
		t.Fatalf("RequestName = %q", got)
	}
	if got := ResponseName(&CreateSessionResponse{}); got != "CreateSession" {
		t.Fatalf("ResponseName = %q", got)
	}
	if got := PushName(NotifyPush{}); got != "Notify" {
		t.Fatalf("PushName = %q", got)
	}
	if got := PayloadType(9).String(); got != "Unknown(9)" {
		t.Fatalf("PayloadType(9) = %q", got)
	}
}
