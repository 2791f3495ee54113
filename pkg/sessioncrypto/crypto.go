// Package sessioncrypto implements the two encryption layers of a client
// connection: a NaCl box exchange keyed by the installation keys, used only
// for the handshake, and a secretbox session keyed by libsodium-compatible kx
// session keys with implicit, incrementing nonces.
//
// The phases are distinct types. Each transition consumes its receiver, and
// any later call on a consumed phase fails with ErrStateConsumed.
package sessioncrypto

import (
	"crypto/rand"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	PublicKeyBytes  = 32
	SecretKeyBytes  = 32
	SessionKeyBytes = 32
	NonceBytes      = 24
	MacBytes        = secretbox.Overhead

	// AdvertisementBytes is the size of the plaintext advertisement: the
	// ephemeral public key followed by the server and client nonces.
	AdvertisementBytes = PublicKeyBytes + 2*NonceBytes
)

type Created struct {
	keys     *BootstrapKeys
	rand     io.Reader
	consumed bool
}

func New(keys *BootstrapKeys) *Created {
	return &Created{keys: keys, rand: rand.Reader}
}

// Generate creates the ephemeral kx keypair and both session nonces.
func (c *Created) Generate() (*ParametersGenerated, error) {
	if c.consumed {
		return nil, ErrStateConsumed
	}
	c.consumed = true

	p := &ParametersGenerated{keys: c.keys, rand: c.rand}
	if err := newKxKeypair(c.rand, &p.publicKey, &p.secretKey); err != nil {
		return nil, cryptoError(CryptoErrorKind_KeyExchange)
	}
	if _, err := io.ReadFull(c.rand, p.serverNonce[:]); err != nil {
		return nil, cryptoError(CryptoErrorKind_KeyExchange)
	}
	if _, err := io.ReadFull(c.rand, p.clientNonce[:]); err != nil {
		return nil, cryptoError(CryptoErrorKind_KeyExchange)
	}

	return p, nil
}

type ParametersGenerated struct {
	keys *BootstrapKeys
	rand io.Reader

	publicKey   [PublicKeyBytes]byte
	secretKey   [SecretKeyBytes]byte
	serverNonce [NonceBytes]byte
	clientNonce [NonceBytes]byte

	consumed bool
}

// Advertise returns the plaintext advertisement:
// public key (32) || server nonce (24) || client nonce (24).
func (p *ParametersGenerated) Advertise() ([]byte, error) {
	if p.consumed {
		return nil, ErrStateConsumed
	}

	buf := make([]byte, 0, AdvertisementBytes)
	buf = append(buf, p.publicKey[:]...)
	buf = append(buf, p.serverNonce[:]...)
	buf = append(buf, p.clientNonce[:]...)
	return buf, nil
}

// KxEncrypt boxes payload with the installation keys under a fresh random
// nonce. The result is framed as nonce || MAC || ciphertext.
func (p *ParametersGenerated) KxEncrypt(payload []byte) ([]byte, error) {
	if p.consumed {
		return nil, ErrStateConsumed
	}
	return sealKx(p.rand, payload, &p.keys.ClientPublicKey, &p.keys.ServerSecretKey)
}

// KxDecrypt opens a nonce || MAC || ciphertext frame sent by the client.
func (p *ParametersGenerated) KxDecrypt(msg []byte) ([]byte, error) {
	if p.consumed {
		return nil, ErrStateConsumed
	}
	return openKx(msg, &p.keys.ClientPublicKey, &p.keys.ServerSecretKey)
}

// DeriveSessionKeys computes the server side of libsodium's
// crypto_kx_server_session_keys against the client's ephemeral key.
func (p *ParametersGenerated) DeriveSessionKeys(clientPublicKey [PublicKeyBytes]byte) (*ActiveSession, error) {
	if p.consumed {
		return nil, ErrStateConsumed
	}
	p.consumed = true

	keys, err := kxSessionKeys(&p.secretKey, &clientPublicKey, &clientPublicKey, &p.publicKey)
	if err != nil {
		return nil, err
	}

	s := &ActiveSession{
		sendNonce: p.serverNonce,
		recvNonce: p.clientNonce,
	}
	copy(s.tx[:], keys[:SessionKeyBytes])
	copy(s.rx[:], keys[SessionKeyBytes:])
	clear(p.secretKey[:])

	return s, nil
}

// ActiveSession encrypts server to client traffic with tx and the server
// nonce, and decrypts client to server traffic with rx and the client nonce.
// It is not safe for concurrent use.
type ActiveSession struct {
	rx        [SessionKeyBytes]byte
	tx        [SessionKeyBytes]byte
	sendNonce [NonceBytes]byte
	recvNonce [NonceBytes]byte
}

// SessionEncrypt returns MAC || ciphertext and advances the send nonce.
func (s *ActiveSession) SessionEncrypt(payload []byte) ([]byte, error) {
	out := secretbox.Seal(make([]byte, 0, MacBytes+len(payload)), payload, &s.sendNonce, &s.tx)
	incrementNonce(&s.sendNonce)
	return out, nil
}

// SessionDecrypt opens MAC || ciphertext. The receive nonce only advances on
// success, so a tampered message cannot desynchronize a later valid one.
func (s *ActiveSession) SessionDecrypt(msg []byte) ([]byte, error) {
	if len(msg) < MacBytes {
		return nil, ErrDecrypt
	}

	out, ok := secretbox.Open(make([]byte, 0, len(msg)-MacBytes), msg, &s.recvNonce, &s.rx)
	if !ok {
		return nil, ErrDecrypt
	}
	incrementNonce(&s.recvNonce)
	return out, nil
}

// incrementNonce adds one to a little-endian nonce, like sodium_increment.
func incrementNonce(n *[NonceBytes]byte) {
	for i := range n {
		n[i]++
		if n[i] != 0 {
			return
		}
	}
}

func newKxKeypair(r io.Reader, public *[PublicKeyBytes]byte, secret *[SecretKeyBytes]byte) error {
	if _, err := io.ReadFull(r, secret[:]); err != nil {
		return err
	}
	pk, err := curve25519.X25519(secret[:], curve25519.Basepoint)
	if err != nil {
		return err
	}
	copy(public[:], pk)
	return nil
}

// kxSessionKeys returns BLAKE2b-512(X25519(secret, peer) || clientPK || serverPK).
// The server transmits with the first half, the client with the second.
func kxSessionKeys(secret, peer, clientPK, serverPK *[32]byte) ([2 * SessionKeyBytes]byte, error) {
	var keys [2 * SessionKeyBytes]byte

	q, err := curve25519.X25519(secret[:], peer[:])
	if err != nil {
		return keys, ErrSessionKeyDerivation
	}

	h, err := blake2b.New512(nil)
	if err != nil {
		return keys, ErrSessionKeyDerivation
	}
	h.Write(q)
	h.Write(clientPK[:])
	h.Write(serverPK[:])
	copy(keys[:], h.Sum(nil))
	clear(q)

	return keys, nil
}

func sealKx(r io.Reader, payload []byte, peerPublic, secret *[32]byte) ([]byte, error) {
	var nonce [NonceBytes]byte
	if _, err := io.ReadFull(r, nonce[:]); err != nil {
		return nil, ErrKeyExchange
	}

	out := make([]byte, NonceBytes, NonceBytes+box.Overhead+len(payload))
	copy(out, nonce[:])
	return box.Seal(out, payload, &nonce, peerPublic, secret), nil
}

func openKx(msg []byte, peerPublic, secret *[32]byte) ([]byte, error) {
	if len(msg) < NonceBytes+box.Overhead {
		return nil, ErrDecrypt
	}

	var nonce [NonceBytes]byte
	copy(nonce[:], msg[:NonceBytes])

	out, ok := box.Open(nil, msg[NonceBytes:], &nonce, peerPublic, secret)
	if !ok {
		return nil, ErrDecrypt
	}
	return out, nil
}
