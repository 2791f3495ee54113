package sessioncrypto

import (
	"crypto/rand"
	"io"
)

// Peer is the client side of the handshake. The probe tool and the tests
// use it to talk to a server the way the game does.
type Peer struct {
	keys *ClientKeys
	rand io.Reader
}

func NewPeer(keys *ClientKeys) *Peer {
	return &Peer{keys: keys, rand: rand.Reader}
}

// PeerSession is the client's view of an established session: it encrypts
// with the client nonce and decrypts with the server nonce.
type PeerSession struct {
	ActiveSession
}

// Advertisement is the decoded server advertisement.
type Advertisement struct {
	ServerPublicKey [PublicKeyBytes]byte
	ServerNonce     [NonceBytes]byte
	ClientNonce     [NonceBytes]byte
}

// OpenAdvertisement decrypts the server's second handshake message.
func (p *Peer) OpenAdvertisement(msg []byte) (*Advertisement, error) {
	plain, err := p.KxDecrypt(msg)
	if err != nil {
		return nil, err
	}
	if len(plain) != AdvertisementBytes {
		return nil, ErrKeyExchange
	}

	ad := &Advertisement{}
	copy(ad.ServerPublicKey[:], plain[:PublicKeyBytes])
	copy(ad.ServerNonce[:], plain[PublicKeyBytes:PublicKeyBytes+NonceBytes])
	copy(ad.ClientNonce[:], plain[PublicKeyBytes+NonceBytes:])
	return ad, nil
}

// Respond generates the client's ephemeral keypair, derives the client
// session keys and returns the boxed public key to send back.
func (p *Peer) Respond(ad *Advertisement) ([]byte, *PeerSession, error) {
	var public [PublicKeyBytes]byte
	var secret [SecretKeyBytes]byte
	if err := newKxKeypair(p.rand, &public, &secret); err != nil {
		return nil, nil, ErrKeyExchange
	}

	keys, err := kxSessionKeys(&secret, &ad.ServerPublicKey, &public, &ad.ServerPublicKey)
	clear(secret[:])
	if err != nil {
		return nil, nil, err
	}

	msg, err := p.KxEncrypt(public[:])
	if err != nil {
		return nil, nil, err
	}

	s := &PeerSession{}
	copy(s.rx[:], keys[:SessionKeyBytes])
	copy(s.tx[:], keys[SessionKeyBytes:])
	s.sendNonce = ad.ClientNonce
	s.recvNonce = ad.ServerNonce

	return msg, s, nil
}

func (p *Peer) KxEncrypt(payload []byte) ([]byte, error) {
	return sealKx(p.rand, payload, &p.keys.ServerPublicKey, &p.keys.ClientSecretKey)
}

func (p *Peer) KxDecrypt(msg []byte) ([]byte, error) {
	return openKx(msg, &p.keys.ServerPublicKey, &p.keys.ClientSecretKey)
}
