// Package tlv holds the byte-level helpers shared by the codec: hex fixtures, struct reports and the
// BER-TLV exchange log format used to record and replay device sessions.
package tlv

import (
	"fmt"
	"strings"

	"github.com/moov-io/bertlv"
)

// EXCHANGE LOG FORMAT:
// A recorded session is a flat sequence of constructed BER-TLV objects, one per exchange:
//
//	E1 <len>            Exchange
//	   80 <len> <cmd>   Command bytes as sent
//	   81 <len> <resp>  Response bytes, status trailer included (absent on failure)
//	   82 <len> <text>  Transport error message (absent on success)
const (
	TagExchange = "E1"
	TagCommand  = "80"
	TagResponse = "81"
	TagError    = "82"
)

// Exchange is one recorded command/response pair.
type Exchange struct {
	Command  []byte
	Response []byte
	Err      string
}

// EncodeExchanges serializes a session log.
func EncodeExchanges(log []Exchange) ([]byte, error) {
	packets := make([]bertlv.TLV, 0, len(log))

	for i, ex := range log {
		if len(ex.Command) == 0 {
			return nil, fmt.Errorf("exchange %d: empty command", i)
		}

		fields := []bertlv.TLV{bertlv.NewTag(TagCommand, ex.Command)}
		if len(ex.Response) > 0 {
			fields = append(fields, bertlv.NewTag(TagResponse, ex.Response))
		}
		if ex.Err != "" {
			fields = append(fields, bertlv.NewTag(TagError, []byte(ex.Err)))
		}
		packets = append(packets, bertlv.NewComposite(TagExchange, fields...))
	}

	data, err := bertlv.Encode(packets)
	if err != nil {
		return nil, fmt.Errorf("bertlv encode failed: %w", err)
	}
	return data, nil
}

// DecodeExchanges parses a session log written by EncodeExchanges.
func DecodeExchanges(data []byte) ([]Exchange, error) {
	if len(data) == 0 {
		return nil, nil
	}

	packets, err := bertlv.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("bertlv decode failed: %w", err)
	}

	log := make([]Exchange, 0, len(packets))
	for i, p := range packets {
		if !strings.EqualFold(p.Tag, TagExchange) {
			return nil, fmt.Errorf("entry %d: unexpected tag %s", i, p.Tag)
		}

		var ex Exchange
		for _, field := range p.TLVs {
			switch strings.ToUpper(field.Tag) {
			case TagCommand:
				ex.Command = field.Value
			case TagResponse:
				ex.Response = field.Value
			case TagError:
				ex.Err = string(field.Value)
			}
		}

		if len(ex.Command) == 0 {
			return nil, fmt.Errorf("entry %d: missing command", i)
		}
		log = append(log, ex)
	}

	return log, nil
}
