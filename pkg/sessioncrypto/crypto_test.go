package sessioncrypto

import (
	"bytes"
	"errors"
	"testing"
)

func newKeySet(t *testing.T) *KeySet {
	t.Helper()

	keys, err := GenerateKeySet()
	if err != nil {
		t.Fatalf("GenerateKeySet() error = %v", err)
	}
	return keys
}

// handshake runs both halves of the exchange and returns the two live ends.
func handshake(t *testing.T, keys *KeySet) (*ActiveSession, *PeerSession) {
	t.Helper()

	params, err := New(keys.Server()).Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	ad, err := params.Advertise()
	if err != nil {
		t.Fatalf("Advertise() error = %v", err)
	}
	boxed, err := params.KxEncrypt(ad)
	if err != nil {
		t.Fatalf("KxEncrypt() error = %v", err)
	}

	peer := NewPeer(keys.Client())
	opened, err := peer.OpenAdvertisement(boxed)
	if err != nil {
		t.Fatalf("OpenAdvertisement() error = %v", err)
	}
	reply, client, err := peer.Respond(opened)
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}

	clientPK, err := params.KxDecrypt(reply)
	if err != nil {
		t.Fatalf("KxDecrypt() error = %v", err)
	}
	if len(clientPK) != PublicKeyBytes {
		t.Fatalf("client public key is %d bytes", len(clientPK))
	}

	server, err := params.DeriveSessionKeys([PublicKeyBytes]byte(clientPK))
	if err != nil {
		t.Fatalf("DeriveSessionKeys() error = %v", err)
	}
	return server, client
}

func TestAdvertisementLayout(t *testing.T) {
	keys := newKeySet(t)

	params, err := New(keys.Server()).Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	ad, _ := params.Advertise()
	if len(ad) != AdvertisementBytes {
		t.Fatalf("advertisement is %d bytes, want %d", len(ad), AdvertisementBytes)
	}

	boxed, _ := params.KxEncrypt(ad)
	if len(boxed) != NonceBytes+MacBytes+AdvertisementBytes {
		t.Fatalf("boxed advertisement is %d bytes, want %d", len(boxed), NonceBytes+MacBytes+AdvertisementBytes)
	}

	opened, err := NewPeer(keys.Client()).OpenAdvertisement(boxed)
	if err != nil {
		t.Fatalf("OpenAdvertisement() error = %v", err)
	}
	if !bytes.Equal(opened.ServerPublicKey[:], ad[:PublicKeyBytes]) {
		t.Fatalf("public key mismatch")
	}
	if !bytes.Equal(opened.ClientNonce[:], ad[PublicKeyBytes+NonceBytes:]) {
		t.Fatalf("client nonce mismatch")
	}
}

func TestKxEncryptUsesFreshNonces(t *testing.T) {
	keys := newKeySet(t)
	params, _ := New(keys.Server()).Generate()

	a, _ := params.KxEncrypt([]byte("same"))
	b, _ := params.KxEncrypt([]byte("same"))
	if bytes.Equal(a[:NonceBytes], b[:NonceBytes]) {
		t.Fatalf("two kx messages share a nonce")
	}
}

func TestKxDecryptRejectsTampering(t *testing.T) {
	keys := newKeySet(t)
	params, _ := New(keys.Server()).Generate()
	peer := NewPeer(keys.Client())

	msg, _ := peer.KxEncrypt(make([]byte, PublicKeyBytes))
	for i := range msg {
		tampered := bytes.Clone(msg)
		tampered[i] ^= 0x01
		if _, err := params.KxDecrypt(tampered); !errors.Is(err, ErrDecrypt) {
			t.Fatalf("byte %d flipped: error = %v, want ErrDecrypt", i, err)
		}
	}

	for _, n := range []int{0, 1, NonceBytes, NonceBytes + MacBytes - 1} {
		if _, err := params.KxDecrypt(msg[:n]); !errors.Is(err, ErrDecrypt) {
			t.Fatalf("truncated to %d: error = %v, want ErrDecrypt", n, err)
		}
	}

	if _, err := params.KxDecrypt(msg); err != nil {
		t.Fatalf("KxDecrypt() error = %v", err)
	}
}

func TestKxDecryptRejectsForeignInstallation(t *testing.T) {
	keys := newKeySet(t)
	other := newKeySet(t)

	params, _ := New(keys.Server()).Generate()
	msg, _ := NewPeer(other.Client()).KxEncrypt([]byte("hello"))
	if _, err := params.KxDecrypt(msg); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("error = %v, want ErrDecrypt", err)
	}
}

func TestSessionTrafficBothDirections(t *testing.T) {
	server, client := handshake(t, newKeySet(t))

	for i := 0; i < 3; i++ {
		up, _ := client.SessionEncrypt([]byte{7})
		if len(up) != MacBytes+1 {
			t.Fatalf("ciphertext is %d bytes, want %d", len(up), MacBytes+1)
		}
		plain, err := server.SessionDecrypt(up)
		if err != nil || !bytes.Equal(plain, []byte{7}) {
			t.Fatalf("server decrypt #%d = %x, %v", i, plain, err)
		}

		down, _ := server.SessionEncrypt([]byte{7, 0x64})
		plain, err = client.SessionDecrypt(down)
		if err != nil || !bytes.Equal(plain, []byte{7, 0x64}) {
			t.Fatalf("client decrypt #%d = %x, %v", i, plain, err)
		}
	}
}

func TestSessionNoncesNeverRepeat(t *testing.T) {
	server, _ := handshake(t, newKeySet(t))

	a, _ := server.SessionEncrypt([]byte("payload"))
	b, _ := server.SessionEncrypt([]byte("payload"))
	if bytes.Equal(a, b) {
		t.Fatalf("consecutive messages encrypted identically")
	}
}

func TestSessionDecryptWithWrongNonceFails(t *testing.T) {
	server, client := handshake(t, newKeySet(t))

	first, _ := client.SessionEncrypt([]byte("one"))
	second, _ := client.SessionEncrypt([]byte("two"))

	// Skipping a message leaves the receiver one nonce behind.
	if _, err := server.SessionDecrypt(second); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("skipped nonce: error = %v, want ErrDecrypt", err)
	}
	if _, err := server.SessionDecrypt(first); err != nil {
		t.Fatalf("in-order decrypt error = %v", err)
	}
	if _, err := server.SessionDecrypt(first); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("replayed nonce: error = %v, want ErrDecrypt", err)
	}
	if _, err := server.SessionDecrypt(second); err != nil {
		t.Fatalf("second decrypt error = %v", err)
	}
}

func TestSessionDecryptRejectsTampering(t *testing.T) {
	server, client := handshake(t, newKeySet(t))

	msg, _ := client.SessionEncrypt([]byte("heartbeat"))
	tampered := bytes.Clone(msg)
	tampered[len(tampered)-1] ^= 0x80

	if _, err := server.SessionDecrypt(tampered); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("error = %v, want ErrDecrypt", err)
	}
	if _, err := server.SessionDecrypt(msg[:MacBytes-1]); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("short message error = %v, want ErrDecrypt", err)
	}
	if _, err := server.SessionDecrypt(msg); err != nil {
		t.Fatalf("original message error = %v", err)
	}
}

func TestIncrementNonceCarries(t *testing.T) {
	var n [NonceBytes]byte
	n[0], n[1] = 0xff, 0xff
	incrementNonce(&n)
	if n[0] != 0 || n[1] != 0 || n[2] != 1 {
		t.Fatalf("increment = %x", n)
	}

	for i := range n {
		n[i] = 0xff
	}
	incrementNonce(&n)
	if n != ([NonceBytes]byte{}) {
		t.Fatalf("wraparound = %x", n)
	}
}

func TestConsumedPhasesReject(t *testing.T) {
	keys := newKeySet(t)
	created := New(keys.Server())

	params, err := created.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, err := created.Generate(); !errors.Is(err, ErrStateConsumed) {
		t.Fatalf("second Generate() error = %v", err)
	}

	var peerPK [PublicKeyBytes]byte
	peerPK[0] = 9
	if _, err := params.DeriveSessionKeys(peerPK); err != nil {
		t.Fatalf("DeriveSessionKeys() error = %v", err)
	}
	if _, err := params.Advertise(); !errors.Is(err, ErrStateConsumed) {
		t.Fatalf("Advertise after derive error = %v", err)
	}
	if _, err := params.KxEncrypt(nil); !errors.Is(err, ErrStateConsumed) {
		t.Fatalf("KxEncrypt after derive error = %v", err)
	}
	if _, err := params.DeriveSessionKeys(peerPK); !errors.Is(err, ErrStateConsumed) {
		t.Fatalf("second DeriveSessionKeys() error = %v", err)
	}
}

func TestLowOrderPeerKeyFailsDerivation(t *testing.T) {
	params, _ := New(newKeySet(t).Server()).Generate()

	var zero [PublicKeyBytes]byte
	if _, err := params.DeriveSessionKeys(zero); !errors.Is(err, ErrSessionKeyDerivation) {
		t.Fatalf("error = %v, want ErrSessionKeyDerivation", err)
	}
}

func TestParseBootstrapKeys(t *testing.T) {
	keys := newKeySet(t)

	parsed, err := ParseBootstrapKeys(EncodeKey(keys.ClientPublicKey), EncodeKey(keys.ServerSecretKey))
	if err != nil {
		t.Fatalf("ParseBootstrapKeys() error = %v", err)
	}
	if *parsed != *keys.Server() {
		t.Fatalf("parsed keys differ")
	}

	if _, err := ParseBootstrapKeys("not base64!", EncodeKey(keys.ServerSecretKey)); err == nil {
		t.Fatalf("invalid base64 accepted")
	}
	if _, err := ParseBootstrapKeys("AAAA", EncodeKey(keys.ServerSecretKey)); err == nil {
		t.Fatalf("short key accepted")
	}
}
