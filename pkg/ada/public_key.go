package ada

import (
	"encoding/binary"
	"strings"

	"github.com/gregLibert/ledger-ada/pkg/apdu"
	"github.com/gregLibert/ledger-ada/pkg/tlv"
)

// GET PUBLIC KEY (INS 0x01):
//   - P1 = 0x01: root key of the wallet (44'/1815'), no payload. The response carries the
//     chain code after the key; together they form the wallet recovery passphrase.
//   - P1 = 0x02: key at 44'/1815'/0'/index, payload is the index as a big-endian uint32.
//
// Response body: [N][key: N bytes][chain code: 32 bytes, root only].
const (
	p1RootKey  byte = 0x01
	p1IndexKey byte = 0x02
)

// PublicKey is a key reported by the device.
type PublicKey struct {
	Root      bool
	Index     uint32 `fmt:"hex"`
	Key       []byte
	ChainCode []byte
}

// PublicKey retrieves the public key at the given derivation index.
func (a *App) PublicKey(index uint32) (*PublicKey, error) {
	data := make([]byte, 4)
	binary.BigEndian.PutUint32(data, index)

	tx, err := a.Client.Send(apdu.NewCommandAPDU(apdu.INS_GET_PUBLIC_KEY, p1IndexKey, 0x00, data))
	if err != nil {
		return nil, err
	}

	key, _, err := decodePublicKey(tx.Response.Data, false)
	if err != nil {
		return nil, err
	}
	return &PublicKey{Index: index, Key: key}, nil
}

// RootPublicKey retrieves the root public key and its chain code.
func (a *App) RootPublicKey() (*PublicKey, error) {
	tx, err := a.Client.Send(apdu.NewCommandAPDU(apdu.INS_GET_PUBLIC_KEY, p1RootKey, 0x00, nil))
	if err != nil {
		return nil, err
	}

	key, chainCode, err := decodePublicKey(tx.Response.Data, true)
	if err != nil {
		return nil, err
	}
	return &PublicKey{Root: true, Key: key, ChainCode: chainCode}, nil
}

func decodePublicKey(body []byte, withChainCode bool) (key, chainCode []byte, err error) {
	if err := requireLen(apdu.INS_GET_PUBLIC_KEY, "key length", body, 1); err != nil {
		return nil, nil, err
	}

	n := int(body[0])
	if err := requireLen(apdu.INS_GET_PUBLIC_KEY, "public key", body, 1+n); err != nil {
		return nil, nil, err
	}
	key = append([]byte(nil), body[1:1+n]...)

	if !withChainCode {
		return key, nil, nil
	}

	if err := requireLen(apdu.INS_GET_PUBLIC_KEY, "chain code", body, 1+n+ChainCodeSize); err != nil {
		return nil, nil, err
	}
	chainCode = append([]byte(nil), body[1+n:1+n+ChainCodeSize]...)
	return key, chainCode, nil
}

// Describe generates a human-readable report of the key.
func (k *PublicKey) Describe() string {
	var sb strings.Builder
	if k.Root {
		sb.WriteString("=== ROOT PUBLIC KEY (44'/1815') ===")
		tlv.WriteStructFields(&sb, "Root", struct {
			Key       []byte
			ChainCode []byte
		}{k.Key, k.ChainCode})
		return sb.String()
	}

	sb.WriteString("=== PUBLIC KEY (44'/1815'/0'/index) ===")
	tlv.WriteStructFields(&sb, "Key", struct {
		Index uint32 `fmt:"hex"`
		Key   []byte
	}{k.Index, k.Key})
	return sb.String()
}
