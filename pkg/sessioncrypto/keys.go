package sessioncrypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/nacl/box"
)

// BootstrapKeys is the long-lived installation key material the server uses
// to protect the handshake before session keys exist.
type BootstrapKeys struct {
	ClientPublicKey [PublicKeyBytes]byte
	ServerSecretKey [SecretKeyBytes]byte
}

// ClientKeys is the client's half of the installation key material.
type ClientKeys struct {
	ClientSecretKey [SecretKeyBytes]byte
	ServerPublicKey [PublicKeyBytes]byte
}

// KeySet is a freshly generated installation: one box keypair for the
// client and one for the server.
type KeySet struct {
	ClientPublicKey [PublicKeyBytes]byte
	ClientSecretKey [SecretKeyBytes]byte
	ServerPublicKey [PublicKeyBytes]byte
	ServerSecretKey [SecretKeyBytes]byte
}

func GenerateKeySet() (*KeySet, error) {
	clientPublic, clientSecret, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate client keypair: %w", err)
	}
	serverPublic, serverSecret, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate server keypair: %w", err)
	}

	return &KeySet{
		ClientPublicKey: *clientPublic,
		ClientSecretKey: *clientSecret,
		ServerPublicKey: *serverPublic,
		ServerSecretKey: *serverSecret,
	}, nil
}

func (k *KeySet) Server() *BootstrapKeys {
	return &BootstrapKeys{
		ClientPublicKey: k.ClientPublicKey,
		ServerSecretKey: k.ServerSecretKey,
	}
}

func (k *KeySet) Client() *ClientKeys {
	return &ClientKeys{
		ClientSecretKey: k.ClientSecretKey,
		ServerPublicKey: k.ServerPublicKey,
	}
}

func EncodeKey(key [32]byte) string {
	return base64.StdEncoding.EncodeToString(key[:])
}

func DecodeKey(name, encoded string) ([32]byte, error) {
	var key [32]byte

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return key, fmt.Errorf("%s is not valid base64: %w", name, err)
	}
	if len(raw) != len(key) {
		return key, fmt.Errorf("%s must be %d bytes, got %d", name, len(key), len(raw))
	}

	copy(key[:], raw)
	return key, nil
}

func ParseBootstrapKeys(clientPublicKey, serverSecretKey string) (*BootstrapKeys, error) {
	clientPublic, err := DecodeKey("client public key", clientPublicKey)
	if err != nil {
		return nil, err
	}
	serverSecret, err := DecodeKey("server secret key", serverSecretKey)
	if err != nil {
		return nil, err
	}

	return &BootstrapKeys{ClientPublicKey: clientPublic, ServerSecretKey: serverSecret}, nil
}

func ParseClientKeys(clientSecretKey, serverPublicKey string) (*ClientKeys, error) {
	clientSecret, err := DecodeKey("client secret key", clientSecretKey)
	if err != nil {
		return nil, err
	}
	serverPublic, err := DecodeKey("server public key", serverPublicKey)
	if err != nil {
		return nil, err
	}

	return &ClientKeys{ClientSecretKey: clientSecret, ServerPublicKey: serverPublic}, nil
}
